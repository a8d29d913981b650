package config

// DefaultDatabasePath is the default path for the library database file.
const DefaultDatabasePath = "./library.db"
