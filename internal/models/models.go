package models

// ===========================================================================
// Models Index
// Full model list for GORM AutoMigrate.
// ===========================================================================

// AllModels returns every model for database.AutoMigrate().
func AllModels() []interface{} {
	return []interface{}{
		&User{},               // system users
		&Note{},               // shift notes + shared boards
		&Task{},               // supervisor-assigned tasks
		&Annotation{},         // free-standing annotations
		&StorageSelection{},   // current storage-cell assignment (singleton)
		&StorageLog{},         // append-only storage audit trail
		&PrivateMessage{},     // direct messages
		&PrivateChatContact{}, // chat allow-lists
	}
}
