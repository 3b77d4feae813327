package dto

// Query filters use plain strings so the use case can reject unknown enum
// values with a 400 instead of silently matching nothing.

// SpeciesListRequest - фильтры каталога видов
type SpeciesListRequest struct {
	Category string `query:"category"`
	Type     string `query:"type"`
}

// LocationListRequest - фильтры списка городов
type LocationListRequest struct {
	Severity string `query:"severity"`
	Type     string `query:"type"`
}

// SightingListRequest - фильтры списка наблюдений
type SightingListRequest struct {
	SpeciesID  int64  `query:"species_id"`
	LocationID int64  `query:"location_id"`
	Status     string `query:"status"`
	Limit      int    `query:"limit"`
}

// ReportListRequest - фильтры списка экологических отчётов
type ReportListRequest struct {
	LocationID int64  `query:"location_id"`
	Type       string `query:"type"`
	Status     string `query:"status"`
	Severity   string `query:"severity"`
	Limit      int    `query:"limit"`
}

// ActivityListRequest - фильтры журнала действий
type ActivityListRequest struct {
	UserID int64  `query:"user_id"`
	Action string `query:"action"`
	Limit  int    `query:"limit"`
}

// CreateSightingRequest is a new sighting. Pointer fields distinguish a
// missing key from an empty value.
type CreateSightingRequest struct {
	SpeciesID       *int64  `json:"species_id" validate:"required"`
	LocationID      *int64  `json:"location_id" validate:"required"`
	ObserverName    *string `json:"observer_name" validate:"required"`
	ObserverContact *string `json:"observer_contact" validate:"required"`
	SightingDate    string  `json:"sighting_date,omitempty"`
	SightingTime    string  `json:"sighting_time,omitempty"`
	NumberObserved  *int    `json:"number_observed,omitempty" validate:"omitempty,min=1"`
	Notes           *string `json:"notes,omitempty"`
	PhotoURL        *string `json:"photo_url,omitempty"`
}

// UpdateSightingStatusRequest - публичная смена статуса наблюдения
type UpdateSightingStatusRequest struct {
	VerificationStatus *string `json:"verification_status"`
}

// VerifySightingRequest - модерация наблюдения администратором
type VerifySightingRequest struct {
	Status *string `json:"status"`
}

// CreateReportRequest - новый экологический отчёт
type CreateReportRequest struct {
	LocationID      *int64  `json:"location_id" validate:"required"`
	ReportType      *string `json:"report_type" validate:"required"`
	Severity        *string `json:"severity" validate:"required"`
	Title           *string `json:"title" validate:"required"`
	Description     *string `json:"description" validate:"required"`
	ReporterName    *string `json:"reporter_name" validate:"required"`
	ReporterContact *string `json:"reporter_contact" validate:"required"`
	ReportDate      *string `json:"report_date" validate:"required"`
	PhotoURL        *string `json:"photo_url,omitempty"`
}

// UpdateReportStatusRequest - публичная смена статуса отчёта
type UpdateReportStatusRequest struct {
	Status *string `json:"status"`
}

// AdminUpdateReportRequest - редактирование отчёта администратором.
// Отсутствующие поля не меняются.
type AdminUpdateReportRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	ReportType      *string `json:"report_type"`
	Severity        *string `json:"severity"`
	ReporterName    *string `json:"reporter_name"`
	ReporterContact *string `json:"reporter_contact"`
	Status          *string `json:"status"`
}

// RegisterRequest - регистрация пользователя
type RegisterRequest struct {
	FullName        string `json:"full_name" form:"full_name"`
	Username        string `json:"username" form:"username"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

// LoginRequest - вход пользователя или администратора
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}
