package dto

// DetailResponse cuerpo {"detail": "..."} usado por el backend tanto en errores como en
// confirmaciones (logout). Code solo acompaña a los errores de token.
type DetailResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

// FieldErrors errores de validación por campo: {"nome": ["mensagem"]}.
type FieldErrors map[string][]string
