package model

// NonFieldErrors is the key of errors which do not belong to a field.
const NonFieldErrors = "__all__"

// FormErrors maps a field name to its error messages.
type FormErrors map[string][]string

func (e FormErrors) Add(field, message string) FormErrors {
	if e == nil {
		e = FormErrors{}
	}

	e[field] = append(e[field], message)
	return e
}

func (e FormErrors) Get(field string) []string {
	return e[field]
}

func (e FormErrors) Empty() bool {
	return len(e) == 0
}

type PostForm struct {
	Text   string     `json:"text"`
	Group  string     `json:"group"`
	Errors FormErrors `json:"errors,omitempty"`
}

type CommentForm struct {
	Text   string     `json:"text"`
	Errors FormErrors `json:"errors,omitempty"`
}

type SignupForm struct {
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Errors    FormErrors `json:"errors,omitempty"`
}

type LoginForm struct {
	Username string     `json:"username"`
	Errors   FormErrors `json:"errors,omitempty"`
}
