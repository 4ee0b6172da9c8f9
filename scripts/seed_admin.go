// 初始化管理员账号脚本
//
// 新环境首次部署后数据库里没有任何管理员，此脚本创建一个，
// 之后的用户管理都走管理端接口或 CSV 导入。
//
// 用法: go run scripts/seed_admin.go -email admin@corp.example -name Admin -password <密码>

package main

import (
	"flag"
	"log"
	"strings"

	"training_portal_backend/internal/config"
	"training_portal_backend/internal/model"
	"training_portal_backend/internal/repository"
	"training_portal_backend/internal/service"
	"training_portal_backend/pkg/database"
	"training_portal_backend/pkg/logger"
)

func main() {
	email := flag.String("email", "", "管理员邮箱")
	name := flag.String("name", "Admin", "显示名")
	password := flag.String("password", "", "登录密码")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("用法: go run scripts/seed_admin.go -email <邮箱> -password <密码>")
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode, true)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)

	team, err := teamRepo.FindByName("Unassigned")
	if err != nil {
		log.Fatalf("默认团队不存在，先运行一次迁移: %v", err)
	}

	hash, err := service.HashPassword(*password)
	if err != nil {
		log.Fatalf("密码哈希失败: %v", err)
	}

	lower := strings.ToLower(*email)
	user := &model.User{
		ExternalID:   strings.ReplaceAll(lower, "@", "."),
		Name:         *name,
		Email:        lower,
		Role:         model.Admin,
		TeamID:       team.ID,
		PasswordHash: hash,
	}
	if err := userRepo.Create(user); err != nil {
		log.Fatalf("创建管理员失败: %v", err)
	}

	log.Printf("管理员已创建: %s (id=%d)", user.Email, user.ID)
}
