package grammar

// inflectReflexive wraps a verb inflection with a reflexive particle. The
// particle precedes the infinitive ("się~robić") and follows finite forms
// ("robi~się"). inflect computes the non-reflexive form.
func inflectReflexive(particle, text string, reflexive bool, f Form, inflect func() (string, error)) (string, error) {
	if f.Infinitive && reflexive {
		return particle + AttachMarker + text, nil
	}
	out, err := inflect()
	if err != nil {
		return "", err
	}
	if reflexive {
		out += AttachMarker + particle
	}
	return out, nil
}
