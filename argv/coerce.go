package argv

// coerce converts one token for one argument. Expected values take
// precedence over a validator, which takes precedence over conversion by
// the default value's type. Tokens after the terminator never count as
// option-shaped.
func (s *parseState) coerce(a *Argument, pos positional) (Value, *ParseError) {
	tok := pos.token
	if len(a.expectedValues) > 0 {
		for _, ev := range a.expectedValues {
			if v, err := FromString(tok, ev.Type()); err == nil && v.Equal(ev) {
				return v, nil
			}
		}
		code := CodeInvalidArgumentValue
		if !pos.literal && s.p.optionShaped(tok) {
			code = CodeInvalidOptionPosition
		}
		candidates := make([]string, len(a.expectedValues))
		for i, ev := range a.expectedValues {
			candidates[i] = ev.String()
		}
		return Value{}, newParseError(s.cmd, code, tok, a.name).withCandidates(tok, candidates)
	}

	if a.validator != nil {
		v, err := a.validator(tok)
		if err != nil {
			return Value{}, newParseError(s.cmd, CodeArgumentValidateFailed, tok, a.name, err.Error())
		}
		return v, nil
	}

	typ := a.defaultValue.Type()
	if typ == TypeNull {
		return StringValue(tok), nil
	}
	v, err := FromString(tok, typ)
	if err != nil {
		return Value{}, newParseError(s.cmd, CodeArgumentTypeMismatch, tok, a.name, typ.String())
	}
	return v, nil
}
