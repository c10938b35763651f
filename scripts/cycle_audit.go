// 手动触发概念依赖环检查脚本
//
// 路径生成时遇到环只会跳过并告警，不会阻断服务。该脚本用于在
// 大批量导入概念后离线审计整个概念目录，把所有成环依赖一次性列出来。
//
// 用法: go run scripts/cycle_audit.go

package main

import (
	"log"
	"os"

	"concept_edu_backend/internal/config"
	"concept_edu_backend/internal/engine"
	"concept_edu_backend/internal/model"
	"concept_edu_backend/pkg/database"
	"concept_edu_backend/pkg/logger"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	var concepts []model.Concept
	if err := db.Preload("Prerequisites").Find(&concepts).Error; err != nil {
		log.Fatalf("加载概念失败: %v", err)
	}

	g := engine.NewGraph(concepts)
	_, cycles := g.SequentialPath(engine.Ledger{})

	if len(cycles) == 0 {
		log.Printf("检查完成：%d 个概念，未发现依赖环", g.Len())
		return
	}

	log.Printf("检查完成：%d 个概念，发现 %d 处依赖环", g.Len(), len(cycles))
	for _, d := range cycles {
		log.Printf("  %s", d.String())
	}
	os.Exit(1)
}
