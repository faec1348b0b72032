package models

// Shared returns the shared models for AutoMigrate.
func Shared() []interface{} {
	return []interface{}{
		&User{},
		&Address{},
		&Size{},
		&Payment{},
		&Preference{},
		&Travel{},
		&Birthday{},
		&SystemLog{},
	}
}
