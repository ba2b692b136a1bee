package star

import (
	"gorm.io/gorm"
)

// AllModels returns the destination schema for GORM AutoMigrate:
// the structural copy of the source star schema plus the
// destination-only job and variable tables.
func AllModels() []interface{} {
	return []interface{}{
		&PatientDimension{},
		&VisitDimension{},
		&ConceptDimension{},
		&ModifierDimension{},
		&ObservationFact{},
		&Job{},
		&VariableRow{},
	}
}

// Migrate runs GORM AutoMigrate to create the destination schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
