package star

import (
	"time"
)

// Destination-only table and view names.
const (
	TableJob        = "job"
	TableVariable   = "variable"
	ViewDataSummary = "data_summary"
)

// Job records the request that produced the dataset file.
type Job struct {
	// RunID is a random identifier of this export run.
	RunID string `gorm:"column:run_id;type:varchar(36)"`

	// DatasetUUID is derived deterministically from the patient set
	// and filename, so re-running the same request yields the same
	// identifier.
	DatasetUUID string `gorm:"column:dataset_uuid;type:varchar(36)"`

	Pset      int        `gorm:"column:pset"`
	Label     *string    `gorm:"column:label;type:varchar(255)"`
	Concepts  *string    `gorm:"column:concepts"`
	Name      *string    `gorm:"column:name;type:varchar(255)"`
	Username  *string    `gorm:"column:username;type:varchar(50)"`
	StartedAt *time.Time `gorm:"column:started_at"`
}

func (Job) TableName() string { return TableJob }

// VariableRow ties a requested concept to its resolved path inside
// the dataset. The short_name, section and redundant columns stay
// empty here; downstream curation tools fill them in.
type VariableRow struct {
	ID          int     `gorm:"column:id"`
	ItemKey     *string `gorm:"column:item_key;type:varchar(700)"`
	ConceptPath *string `gorm:"column:concept_path;type:varchar(700)"`
	NameChar    *string `gorm:"column:name_char;type:varchar(2000)"`
	Name        *string `gorm:"column:name;type:varchar(2000)"`
	ShortName   *string `gorm:"column:short_name;type:varchar(255)"`
	Section     *string `gorm:"column:section;type:varchar(255)"`
	Redundant   *bool   `gorm:"column:redundant"`
}

func (VariableRow) TableName() string { return TableVariable }
