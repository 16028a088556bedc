// 手动导入初始数据到 MySQL
//
// 内存模式下启动时会自动读取 database.seed_file；此脚本用于 MySQL 首次部署。
// 已存在的记录（按 _id）会被跳过，可以重复执行。
//
// 用法: go run scripts/seed.go -file configs/seed.yaml

package main

import (
	"assessment_backend/internal/config"
	"assessment_backend/internal/repository"
	"assessment_backend/pkg/database"
	"assessment_backend/pkg/logger"
	"context"
	"flag"
	"log"

	"go.uber.org/zap"
)

func main() {
	file := flag.String("file", "configs/seed.yaml", "初始数据文件")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}
	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	seed, err := database.LoadSeed(*file)
	if err != nil {
		log.Fatalf("读取初始数据失败: %v", err)
	}

	n, err := database.ApplySeed(context.Background(), repository.NewGormStore(db), seed)
	if err != nil {
		logger.Log.Fatal("seed failed", zap.Error(err))
	}
	log.Printf("完成！新增 %d 条记录", n)
}
