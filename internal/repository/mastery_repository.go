package repository

import (
	"time"

	"concept_edu_backend/internal/engine"
	"concept_edu_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MasteryRepository struct {
	DB *gorm.DB
}

func NewMasteryRepository(db *gorm.DB) *MasteryRepository {
	return &MasteryRepository{DB: db}
}

// GetLedger 一次事务内读出课程维度的台账快照，避免跨行撕裂读
func (r *MasteryRepository) GetLedger(userID uint, courseID string) (engine.Ledger, error) {
	var records []model.MasteryRecord
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Where("user_id = ? AND course_id = ?", userID, courseID).
			Find(&records).Error
	})
	if err != nil {
		return nil, err
	}

	ledger := make(engine.Ledger, len(records))
	for i := range records {
		ledger[records[i].ConceptID] = &records[i]
	}
	return ledger, nil
}

func (r *MasteryRepository) Find(userID uint, conceptID, courseID string) (*model.MasteryRecord, error) {
	var rec model.MasteryRecord
	err := r.DB.Where("user_id = ? AND concept_id = ? AND course_id = ?", userID, conceptID, courseID).
		First(&rec).Error
	return &rec, err
}

// UpdateAtomically 行锁下执行台账条目的读-改-写
// attempts/score 是累计量，裸覆盖会丢并发提交，必须串行化同一条目的更新
// 条目不存在时惰性创建（首次交互）
func (r *MasteryRepository) UpdateAtomically(userID uint, conceptID, courseID string, fn func(*model.MasteryRecord) error) (*model.MasteryRecord, error) {
	var out model.MasteryRecord
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var rec model.MasteryRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND concept_id = ? AND course_id = ?", userID, conceptID, courseID).
			First(&rec).Error

		if err == gorm.ErrRecordNotFound {
			rec = model.MasteryRecord{
				UserID:      userID,
				ConceptID:   conceptID,
				CourseID:    courseID,
				Status:      model.MasteryNotStarted,
				LastUpdated: time.Now(),
			}
			// 并发首次创建可能撞唯一索引，忽略冲突后重读加锁
			tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rec)
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("user_id = ? AND concept_id = ? AND course_id = ?", userID, conceptID, courseID).
				First(&rec).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if err := fn(&rec); err != nil {
			return err
		}

		if err := tx.Save(&rec).Error; err != nil {
			return err
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
