package database

import (
	"fmt"
	"log"

	"training_portal_backend/internal/config"
	"training_portal_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, mode string, forceMigrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// release 模式默认不自动迁移，除非显式带 -migrate 标志
	if mode != "release" || forceMigrate {
		err = db.AutoMigrate(
			&model.Team{},
			&model.User{},
			&model.LoginSession{},
			&model.QuizAttempt{},
			&model.VideoProgress{},
		)

		if err != nil {
			return nil, err
		}

		log.Println("Database migration completed")
	}

	// 默认团队：SSO 首次登录和 CSV 导入中未匹配到部门的用户落在这里
	var count int64
	db.Model(&model.Team{}).Count(&count)
	if count == 0 {
		defaultTeams := []model.Team{
			{Name: "Unassigned"},
			{Name: "Engineering"},
			{Name: "Sales"},
		}
		for _, t := range defaultTeams {
			db.Create(&t)
		}
	}

	return db, nil
}
