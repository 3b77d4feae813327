package domain

type ReportCategory struct {
	ID          int64  `db:"category_id" json:"category_id"`
	Name        string `db:"category_name" json:"category_name"`
	Description string `db:"description" json:"description"`
}

type ReportSeverity struct {
	ID          int64  `db:"severity_id" json:"severity_id"`
	Level       string `db:"severity_level" json:"severity_level"`
	Description string `db:"description" json:"description"`
}
