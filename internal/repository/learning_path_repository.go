package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"concept_edu_backend/internal/model"
	"concept_edu_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LearningPathRepository struct {
	DB  *gorm.DB
	RDB *redis.Client
}

func NewLearningPathRepository(db *gorm.DB, rdb *redis.Client) *LearningPathRepository {
	return &LearningPathRepository{DB: db, RDB: rdb}
}

func pathCacheKey(userID uint, courseID string) string {
	return fmt.Sprintf("learning_path:%d:%s", userID, courseID)
}

// Upsert 整条覆盖写入（路径从不逐字段修补），同时刷新 redis 镜像
func (r *LearningPathRepository) Upsert(path *model.LearningPath, ttl time.Duration) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.LearningPath
		err := tx.Where("user_id = ? AND course_id = ?", path.UserID, path.CourseID).
			First(&existing).Error
		if err == nil {
			path.ID = existing.ID
			path.CreatedAt = existing.CreatedAt
			return tx.Save(path).Error
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if path.ID == "" {
			path.ID = model.GenerateUUID()
		}
		return tx.Create(path).Error
	})
	if err != nil {
		return err
	}

	r.cache(path, ttl)
	return nil
}

// Find 先查库，库里没有时回退 redis 镜像（离线兜底）
func (r *LearningPathRepository) Find(userID uint, courseID string) (*model.LearningPath, error) {
	var p model.LearningPath
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&p).Error
	if err == nil {
		return &p, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	cached, cacheErr := r.fromCache(userID, courseID)
	if cacheErr != nil {
		return nil, err // 保留原始的 not found
	}
	return cached, nil
}

func (r *LearningPathRepository) UpdateSelectedRoute(userID uint, courseID string, route int) error {
	return r.DB.Model(&model.LearningPath{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Updates(map[string]interface{}{
			"selected_route": route,
			"saved_at":       time.Now(),
		}).Error
}

func (r *LearningPathRepository) Invalidate(userID uint, courseID string) {
	ctx := context.Background()
	if err := r.RDB.Del(ctx, pathCacheKey(userID, courseID)).Err(); err != nil {
		logger.Log.Warn("failed to invalidate path cache", zap.Error(err))
	}
}

func (r *LearningPathRepository) cache(path *model.LearningPath, ttl time.Duration) {
	data, err := json.Marshal(path)
	if err != nil {
		return
	}
	ctx := context.Background()
	if err := r.RDB.Set(ctx, pathCacheKey(path.UserID, path.CourseID), data, ttl).Err(); err != nil {
		logger.Log.Warn("failed to cache learning path", zap.Error(err))
	}
}

func (r *LearningPathRepository) fromCache(userID uint, courseID string) (*model.LearningPath, error) {
	ctx := context.Background()
	data, err := r.RDB.Get(ctx, pathCacheKey(userID, courseID)).Bytes()
	if err != nil {
		return nil, err
	}
	var p model.LearningPath
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
