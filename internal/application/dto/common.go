package dto

// CategoryOption opción de categoría para selects y filtros de las vistas.
type CategoryOption struct {
	Value    string
	Label    string
	Selected bool
}

// HealthResponse cuerpo de GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Store   string `json:"store"`
}
