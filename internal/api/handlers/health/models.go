package health

// HealthResponse состояние сервиса
type HealthResponse struct {
	Status  string `json:"status"`
	Seeding string `json:"seeding"`
	Storage string `json:"storage"`
}
