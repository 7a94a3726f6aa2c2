package action

// ConflictCheck is the result of key-binding conflict detection.
type ConflictCheck struct {
	// Valid is true when no conflicts were found.
	Valid bool

	// Err aggregates the conflicts when Valid is false.
	Err error

	// Conflicts lists each contested key.
	Conflicts []KeyConflictError
}

// DetectKeyBindingConflicts checks custom actions against each other and
// against the builtin catalog. Key comparison is case-sensitive: "a" and
// "A" are distinct keys.
//
// A custom action redefining a builtin's id replaces that builtin, so its
// keys are not compared against the builtin it replaces. Disabled actions
// never claim keys.
func DetectKeyBindingConflicts(custom []Definition, builtins []Definition) ConflictCheck {
	claims := make(map[string][]string)
	order := make([]string, 0)

	claim := func(key, id string) {
		if _, seen := claims[key]; !seen {
			order = append(order, key)
		}
		claims[key] = append(claims[key], id)
	}

	redefined := make(map[string]struct{}, len(custom))
	for i := range custom {
		redefined[custom[i].ID] = struct{}{}
	}

	builtinIDs := make(map[string]struct{}, len(builtins))
	for i := range builtins {
		b := &builtins[i]
		builtinIDs[b.ID] = struct{}{}
		if _, replaced := redefined[b.ID]; replaced {
			continue
		}
		for _, k := range b.EffectiveKeys() {
			claim(k, b.ID)
		}
	}

	for i := range custom {
		c := &custom[i]
		if !c.IsEnabled() {
			continue
		}
		for _, k := range c.EffectiveKeys() {
			claim(k, c.ID)
		}
	}

	var conflicts []KeyConflictError
	for _, key := range order {
		ids := dedupe(claims[key])
		if len(ids) < 2 {
			continue
		}
		kc := KeyConflictError{Key: key, ActionIDs: ids}
		for _, id := range ids {
			if _, ok := builtinIDs[id]; ok {
				if _, replaced := redefined[id]; !replaced {
					kc.BuiltinID = id
					break
				}
			}
		}
		conflicts = append(conflicts, kc)
	}

	if len(conflicts) == 0 {
		return ConflictCheck{Valid: true}
	}

	errs := make([]error, len(conflicts))
	for i := range conflicts {
		kc := conflicts[i]
		errs[i] = &kc
	}
	return ConflictCheck{
		Valid:     false,
		Err:       &BuildError{Errors: errs},
		Conflicts: conflicts,
	}
}

// dedupe removes duplicate ids while keeping first-seen order. The same
// action claiming a key twice (primary plus alias) is not a conflict.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
