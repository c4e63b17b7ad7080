package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaHost            string
	KafkaToursSavedTopic string

	// MapFile, when set, is a map document loaded at startup.
	MapFile      string
	CourierCount int
	// CourierSpeed is in km/h.
	CourierSpeed float64
	// DayStartHour and DayStartMinute give the departure time of every tour, local time.
	DayStartHour   int
	DayStartMinute int
	Dwell          time.Duration

	SolverTimeLimit time.Duration
	SolverWorkers   int

	RefineSchedule string
	RefineBudget   time.Duration
}

// DSN is the postgres connection string of the round snapshot store.
func (c Config) DSN() string {
	return "host=" + c.DBHost +
		" port=" + c.DBPort +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" sslmode=" + c.DBSslMode
}
