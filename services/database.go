package services

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"wayfinder-backend/config"
	"wayfinder-backend/models"
)

// DB 인스턴스 (DB_DRIVER 미설정 시 nil)
var db *gorm.DB

// InitDatabase - 설정에 따라 MySQL 또는 SQLite 연결
func InitDatabase(cfg *config.Config) error {
	dialector, err := openDialector(cfg)
	if err != nil {
		return err
	}

	conn, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return fmt.Errorf("DB 연결 실패: %w", err)
	}

	// AutoMigrate - 테이블 자동 생성
	if err := conn.AutoMigrate(
		&models.Building{},
		&models.Floor{},
		&models.WallRecord{},
		&models.TrunkSegmentRecord{},
		&models.RoomRecord{},
		&models.RouteLog{},
	); err != nil {
		return fmt.Errorf("마이그레이션 실패: %w", err)
	}

	db = conn
	log.Printf("✅ DB 연결 및 마이그레이션 완료 (driver=%s)", cfg.DBDriver)
	return nil
}

func openDialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "mysql":
		if cfg.MySQLHost == "" || cfg.MySQLUser == "" || cfg.MySQLPassword == "" || cfg.MySQLDatabase == "" {
			return nil, fmt.Errorf("MySQL 환경 변수가 모두 설정되지 않았습니다: MYSQL_HOST, MYSQL_USER, MYSQL_PASSWORD, MYSQL_DATABASE")
		}
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.MySQLUser, cfg.MySQLPassword, cfg.MySQLHost, cfg.MySQLPort, cfg.MySQLDatabase)
		log.Printf("📡 연결 정보: %s@%s:%d/%s", cfg.MySQLUser, cfg.MySQLHost, cfg.MySQLPort, cfg.MySQLDatabase)
		return mysql.Open(dsn), nil
	case "sqlite":
		log.Printf("📡 SQLite 파일: %s", cfg.SQLitePath)
		return sqlite.Open(cfg.SQLitePath), nil
	default:
		return nil, fmt.Errorf("지원하지 않는 DB_DRIVER: %q", cfg.DBDriver)
	}
}

// GetDB - GORM 인스턴스 반환
func GetDB() *gorm.DB {
	return db
}

// DatabaseReady - DB 연결 여부
func DatabaseReady() bool {
	return db != nil
}

var ErrNoDatabase = errors.New("데이터베이스가 연결되지 않았습니다")

// ListBuildings - 건물 목록 조회
func ListBuildings() ([]models.Building, error) {
	if db == nil {
		return nil, ErrNoDatabase
	}
	var buildings []models.Building
	err := db.Preload("Floors").Order("name").Find(&buildings).Error
	return buildings, err
}

// LoadFloors - 모든 층 도면 조회 (벽/주 경로/방 포함)
func LoadFloors() ([]models.Floor, error) {
	if db == nil {
		return nil, ErrNoDatabase
	}
	var floors []models.Floor
	err := db.Preload("Walls").
		Preload("TrunkSegments").
		Preload("Rooms").
		Order("building_id, `key`").
		Find(&floors).Error
	return floors, err
}

// SaveFloorPlan - 층 도면 저장 (같은 건물/층 키가 있으면 교체)
func SaveFloorPlan(building models.Building, floorKey string, plan models.FloorPlan) (*models.Floor, error) {
	if db == nil {
		return nil, ErrNoDatabase
	}
	floor := models.FloorFromPlan(building.ID, floorKey, plan)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&building).Error; err != nil {
			return fmt.Errorf("건물 저장 실패: %w", err)
		}

		var existing models.Floor
		err := tx.Where("building_id = ? AND `key` = ?", building.ID, floorKey).First(&existing).Error
		if err == nil {
			if err := tx.Select("Walls", "TrunkSegments", "Rooms").Delete(&existing).Error; err != nil {
				return fmt.Errorf("기존 층 삭제 실패: %w", err)
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&floor).Error; err != nil {
			return fmt.Errorf("층 저장 실패: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("💾 층 도면 저장 완료: %s (벽 %d, 주 경로 %d, 방 %d)",
		floor.RegistryKey(), len(floor.Walls), len(floor.TrunkSegments), len(floor.Rooms))
	return &floor, nil
}
