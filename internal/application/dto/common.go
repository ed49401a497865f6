package dto

// PageRequest ventana de un listado paginado (?limit=&offset=).
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// Clamp lleva Limit a [1, max] usando def cuando no viene o excede el máximo.
// Un Offset negativo se toma como cero.
func (p *PageRequest) Clamp(def, max int) {
	if p.Limit <= 0 || p.Limit > max {
		p.Limit = def
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse ventana efectivamente aplicada; Returned es la cantidad de items devueltos.
type PageResponse struct {
	Limit    int `json:"limit"`
	Offset   int `json:"offset"`
	Returned int `json:"returned"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
