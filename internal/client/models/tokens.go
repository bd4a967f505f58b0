package models

// TokenPair is the JWT credential pair issued on login and email
// verification. Access is attached to every authenticated request; Refresh is
// spent at most once per refresh attempt.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Empty reports whether no credentials are held at all.
func (t TokenPair) Empty() bool {
	return t.Access == "" && t.Refresh == ""
}
