package config

import (
	"log"
	"os"
)

type Config struct {
	Port     string
	DBDSN    string
	BranchID string
	LogFile  string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "salepos.db"
	} // sqlite file in project root
	branch := os.Getenv("BRANCH_ID")
	if branch == "" {
		// Every sale is stamped with the branch this instance serves.
		branch = "branch-main"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./salepos.log" // default log sink in project root
	}

	cfg := Config{Port: port, DBDSN: dsn, BranchID: branch, LogFile: logFile}
	log.Printf("[config] PORT=%s DB_DSN=%s BRANCH_ID=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.BranchID, cfg.LogFile)
	return cfg
}
