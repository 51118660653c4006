package repository

import (
	"gorm.io/gorm"

	"listingdesk/cmd/internal/domain/entity"
)

type DefaultConnectionRepository struct {
	db *gorm.DB
}

func NewConnectionRepository(db *gorm.DB) *DefaultConnectionRepository {
	return &DefaultConnectionRepository{db: db}
}

func (r *DefaultConnectionRepository) Save(conn *entity.Connection) error {
	return r.db.Save(conn).Error
}

func (r *DefaultConnectionRepository) Delete(connID string) error {
	return r.db.Delete(&entity.Connection{}, "connection_id = ?", connID).Error
}

func (r *DefaultConnectionRepository) FindByUserID(userID int64) ([]string, error) {
	var ids []string
	err := r.db.Model(&entity.Connection{}).
		Where("user_id = ?", userID).
		Pluck("connection_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *DefaultConnectionRepository) FindAll() ([]string, error) {
	var ids []string
	err := r.db.Model(&entity.Connection{}).
		Pluck("connection_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// FindExpired returns connections whose token expired or whose heartbeat has
// been silent past the tolerated window.
func (r *DefaultConnectionRepository) FindExpired(now int64) ([]*entity.Connection, error) {
	var conns []*entity.Connection
	hbLimit := now - entity.HeartbeatPeriodMillis - entity.HeartbeatToleranceMillis
	err := r.db.
		Where("expires_at < ? OR last_heartbeat_at < ?", now, hbLimit).
		Find(&conns).Error
	if err != nil {
		return nil, err
	}
	return conns, nil
}

func (r *DefaultConnectionRepository) UpdateHeartbeat(connID string, now int64) error {
	return r.db.Model(&entity.Connection{}).
		Where("connection_id = ?", connID).
		Update("last_heartbeat_at", now).Error
}
