// Package star describes the i2b2 star-schema tables the pipeline
// reads from the clinical data warehouse and recreates in the
// dataset file. Column types are declared in portable form: the
// warehouse's vendor-specific numeric subtypes are flattened to
// plain NUMERIC with their precision/scale preserved.
package star

import (
	"time"
)

// Source table names.
const (
	TablePatientDimension  = "patient_dimension"
	TableVisitDimension    = "visit_dimension"
	TableConceptDimension  = "concept_dimension"
	TableModifierDimension = "modifier_dimension"
	TableObservationFact   = "observation_fact"
)

// Warehouse-side staging and membership tables. The staging tables
// are shared, unscoped resources: clear-then-insert, one job at a
// time.
const (
	StagingConceptTable  = "global_temp_fact_param_table"
	StagingCodeTable     = "query_global_temp"
	PatientSetCollection = "qt_patient_set_collection"
)

// PatientDimension is one row per patient.
type PatientDimension struct {
	PatientNum      int64      `gorm:"column:patient_num;primaryKey"`
	VitalStatusCd   *string    `gorm:"column:vital_status_cd;type:varchar(50)"`
	BirthDate       *time.Time `gorm:"column:birth_date"`
	DeathDate       *time.Time `gorm:"column:death_date"`
	SexCd           *string    `gorm:"column:sex_cd;type:varchar(50)"`
	AgeInYearsNum   *float64   `gorm:"column:age_in_years_num;type:numeric(38,0)"`
	LanguageCd      *string    `gorm:"column:language_cd;type:varchar(50)"`
	RaceCd          *string    `gorm:"column:race_cd;type:varchar(50)"`
	MaritalStatusCd *string    `gorm:"column:marital_status_cd;type:varchar(50)"`
	ReligionCd      *string    `gorm:"column:religion_cd;type:varchar(50)"`
	ZipCd           *string    `gorm:"column:zip_cd;type:varchar(10)"`
	StateCityZip    *string    `gorm:"column:statecityzip_path;type:varchar(700)"`
	UpdateDate      *time.Time `gorm:"column:update_date"`
	DownloadDate    *time.Time `gorm:"column:download_date"`
	ImportDate      *time.Time `gorm:"column:import_date"`
	SourcesystemCd  *string    `gorm:"column:sourcesystem_cd;type:varchar(50)"`
	UploadID        *float64   `gorm:"column:upload_id;type:numeric(38,0)"`
}

func (PatientDimension) TableName() string { return TablePatientDimension }

// VisitDimension is one row per encounter.
type VisitDimension struct {
	EncounterNum   int64      `gorm:"column:encounter_num;primaryKey"`
	PatientNum     int64      `gorm:"column:patient_num"`
	ActiveStatusCd *string    `gorm:"column:active_status_cd;type:varchar(50)"`
	StartDate      *time.Time `gorm:"column:start_date"`
	EndDate        *time.Time `gorm:"column:end_date"`
	InoutCd        *string    `gorm:"column:inout_cd;type:varchar(50)"`
	LocationCd     *string    `gorm:"column:location_cd;type:varchar(50)"`
	LocationPath   *string    `gorm:"column:location_path;type:varchar(900)"`
	LengthOfStay   *float64   `gorm:"column:length_of_stay;type:numeric(38,0)"`
	UpdateDate     *time.Time `gorm:"column:update_date"`
	DownloadDate   *time.Time `gorm:"column:download_date"`
	ImportDate     *time.Time `gorm:"column:import_date"`
	SourcesystemCd *string    `gorm:"column:sourcesystem_cd;type:varchar(50)"`
	UploadID       *float64   `gorm:"column:upload_id;type:numeric(38,0)"`
}

func (VisitDimension) TableName() string { return TableVisitDimension }

// ConceptDimension maps hierarchical concept paths to fact codes.
type ConceptDimension struct {
	ConceptPath    string     `gorm:"column:concept_path;type:varchar(700);primaryKey"`
	ConceptCd      *string    `gorm:"column:concept_cd;type:varchar(50)"`
	NameChar       *string    `gorm:"column:name_char;type:varchar(2000)"`
	UpdateDate     *time.Time `gorm:"column:update_date"`
	DownloadDate   *time.Time `gorm:"column:download_date"`
	ImportDate     *time.Time `gorm:"column:import_date"`
	SourcesystemCd *string    `gorm:"column:sourcesystem_cd;type:varchar(50)"`
	UploadID       *float64   `gorm:"column:upload_id;type:numeric(38,0)"`
}

func (ConceptDimension) TableName() string { return TableConceptDimension }

// ModifierDimension maps modifier applicability paths to modifier
// codes.
type ModifierDimension struct {
	ModifierPath   string     `gorm:"column:modifier_path;type:varchar(700);primaryKey"`
	ModifierCd     *string    `gorm:"column:modifier_cd;type:varchar(50)"`
	NameChar       *string    `gorm:"column:name_char;type:varchar(2000)"`
	UpdateDate     *time.Time `gorm:"column:update_date"`
	DownloadDate   *time.Time `gorm:"column:download_date"`
	ImportDate     *time.Time `gorm:"column:import_date"`
	SourcesystemCd *string    `gorm:"column:sourcesystem_cd;type:varchar(50)"`
	UploadID       *float64   `gorm:"column:upload_id;type:numeric(38,0)"`
}

func (ModifierDimension) TableName() string { return TableModifierDimension }

// ObservationFact is one entity-attribute-value observation.
type ObservationFact struct {
	EncounterNum   int64      `gorm:"column:encounter_num"`
	PatientNum     int64      `gorm:"column:patient_num;index"`
	ConceptCd      string     `gorm:"column:concept_cd;type:varchar(50);index"`
	ProviderID     *string    `gorm:"column:provider_id;type:varchar(50)"`
	StartDate      *time.Time `gorm:"column:start_date"`
	ModifierCd     *string    `gorm:"column:modifier_cd;type:varchar(100)"`
	InstanceNum    *float64   `gorm:"column:instance_num;type:numeric(18,0)"`
	ValtypeCd      *string    `gorm:"column:valtype_cd;type:varchar(50)"`
	TvalChar       *string    `gorm:"column:tval_char;type:varchar(255)"`
	NvalNum        *float64   `gorm:"column:nval_num;type:numeric(18,5)"`
	ValueflagCd    *string    `gorm:"column:valueflag_cd;type:varchar(50)"`
	QuantityNum    *float64   `gorm:"column:quantity_num;type:numeric(18,5)"`
	UnitsCd        *string    `gorm:"column:units_cd;type:varchar(50)"`
	EndDate        *time.Time `gorm:"column:end_date"`
	LocationCd     *string    `gorm:"column:location_cd;type:varchar(50)"`
	ConfidenceNum  *float64   `gorm:"column:confidence_num;type:numeric(18,5)"`
	UpdateDate     *time.Time `gorm:"column:update_date"`
	DownloadDate   *time.Time `gorm:"column:download_date"`
	ImportDate     *time.Time `gorm:"column:import_date"`
	SourcesystemCd *string    `gorm:"column:sourcesystem_cd;type:varchar(50)"`
	UploadID       *float64   `gorm:"column:upload_id;type:numeric(38,0)"`
}

func (ObservationFact) TableName() string { return TableObservationFact }
