package database

import (
	"fmt"
	"log"

	"concept_edu_backend/internal/config"
	"concept_edu_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
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
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Concept{},
		&model.ConceptPrerequisite{},
		&model.Course{},
		&model.CourseConcept{},
		&model.CourseEnrollment{},
		&model.MasteryRecord{},
		&model.LearningPath{},
		&model.ConceptQuiz{},
		&model.ConceptQuizQuestion{},
		&model.QuizAttempt{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedDefaultConcepts(db)

	return db, nil
}

// seedDefaultConcepts 空库时插入示例课程及概念依赖链，方便首次启动联调
func seedDefaultConcepts(db *gorm.DB) {
	var count int64
	db.Model(&model.Concept{}).Count(&count)
	if count > 0 {
		return
	}

	course := model.Course{
		ID:          model.GenerateUUID(),
		Title:       "C语言入门",
		Description: "从变量到指针的基础概念链",
		Icon:        "book",
		Published:   true,
	}
	db.Create(&course)

	seeds := []struct {
		title      string
		difficulty model.Difficulty
		minutes    int
		icon       string
		prereqs    []int // 指向 seeds 下标
	}{
		{"变量与类型", model.DifficultyEasy, 30, "variable", nil},
		{"条件与循环", model.DifficultyEasy, 45, "loop", []int{0}},
		{"数组", model.DifficultyMedium, 60, "array", []int{1}},
		{"函数", model.DifficultyMedium, 60, "function", []int{1}},
		{"指针", model.DifficultyHard, 90, "pointer", []int{2, 3}},
	}

	ids := make([]string, len(seeds))
	for i, s := range seeds {
		c := model.Concept{
			ID:               model.GenerateUUID(),
			Title:            s.title,
			Difficulty:       s.difficulty,
			EstimatedMinutes: s.minutes,
			Icon:             s.icon,
			Order:            i,
		}
		db.Create(&c)
		ids[i] = c.ID
		db.Create(&model.CourseConcept{CourseID: course.ID, ConceptID: c.ID, Order: i})
	}

	for i, s := range seeds {
		for j, p := range s.prereqs {
			db.Create(&model.ConceptPrerequisite{
				ConceptID:      ids[i],
				PrerequisiteID: ids[p],
				Order:          j,
			})
		}
	}

	log.Println("Seeded default course and concept graph")
}
