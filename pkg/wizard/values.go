package wizard

// Values accumulates wizard answers keyed by step name. Every answer is
// normalized to an ordered sequence of strings. Names iterate in the
// order they were last answered, not declaration order.
type Values struct {
	// Context is an optional caller-supplied reference, for example a
	// file or directory the wizard was invoked against. The engine never
	// writes it; steps may read it.
	Context string

	answers map[string][]string
	order   []string
}

// NewValues returns an empty accumulator.
func NewValues() *Values {
	return &Values{answers: make(map[string][]string)}
}

// Set stores values under name, replacing any previous answer for that
// name. The slice is copied. Name moves to the end of the answer order.
func (v *Values) Set(name string, values ...string) {
	if v.answers == nil {
		v.answers = make(map[string][]string)
	}
	if _, ok := v.answers[name]; ok {
		for i, n := range v.order {
			if n == name {
				v.order = append(v.order[:i], v.order[i+1:]...)
				break
			}
		}
	}
	v.answers[name] = append([]string{}, values...)
	v.order = append(v.order, name)
}

// SetBool stores "true" or "false" under name.
func (v *Values) SetBool(name string, b bool) {
	if b {
		v.Set(name, "true")
		return
	}
	v.Set(name, "false")
}

// Get returns a copy of the stored sequence for name, or nil if the
// step has not been answered. An answered name always yields a non-nil
// slice, even when the sequence is empty.
func (v *Values) Get(name string) []string {
	vals, ok := v.answers[name]
	if !ok {
		return nil
	}
	return append([]string{}, vals...)
}

// First returns the first stored value for name, or "".
func (v *Values) First(name string) string {
	if vals := v.answers[name]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// Has reports whether name has a stored answer.
func (v *Values) Has(name string) bool {
	_, ok := v.answers[name]
	return ok
}

// Len returns the number of stored answers.
func (v *Values) Len() int {
	return len(v.answers)
}

// Names returns the answered step names in answer order.
func (v *Values) Names() []string {
	return append([]string(nil), v.order...)
}

// Map returns a copy of the full name-to-values mapping.
func (v *Values) Map() map[string][]string {
	m := make(map[string][]string, len(v.answers))
	for name, vals := range v.answers {
		m[name] = append([]string{}, vals...)
	}
	return m
}
