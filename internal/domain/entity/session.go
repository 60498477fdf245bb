package entity

// Session tokens del usuario autenticado. Un campo vacío equivale a ausente.
type Session struct {
	AccessToken  string
	RefreshToken string
	Username     string
}

// Empty indica que no hay ningún dato de sesión.
func (s Session) Empty() bool {
	return s.AccessToken == "" && s.RefreshToken == "" && s.Username == ""
}
