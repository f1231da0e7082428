package database

import "gorm.io/gorm"

type Keyword struct {
	gorm.Model
	Word     string `gorm:"uniqueIndex;not null"`
	Position int    `gorm:"index"`
}

type MonitoredGroup struct {
	gorm.Model
	ChatID int64 `gorm:"uniqueIndex;not null"`
	Kind   string
	Title  string
}
