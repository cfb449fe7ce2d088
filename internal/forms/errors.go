package forms

// MsgIncomplete is the one notification shown when a submit is blocked by field errors.
const MsgIncomplete = "Mohon lengkapi formulir dengan benar"

// Errors holds one message per field name.
type Errors map[string]string

func (e Errors) Set(field, msg string) { e[field] = msg }

func (e Errors) Get(field string) string { return e[field] }

func (e Errors) Has(field string) bool { return e[field] != "" }

func (e Errors) Clear(field string) { delete(e, field) }

func (e Errors) Empty() bool { return len(e) == 0 }

func (e Errors) clone() Errors {
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
