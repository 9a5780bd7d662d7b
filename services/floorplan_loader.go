package services

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"wayfinder-backend/algorithms"
	"wayfinder-backend/models"
)

// ParseFloorPlan - YAML 도면 파싱 및 검증
func ParseFloorPlan(data []byte) (models.FloorPlan, error) {
	var plan models.FloorPlan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return models.FloorPlan{}, fmt.Errorf("도면 파싱 실패: %w", err)
	}
	if err := ValidateFloorPlan(plan); err != nil {
		return models.FloorPlan{}, err
	}
	return plan, nil
}

// ValidateFloorPlan - 크기, 좌표 범위, 구간 형태 검사
// 격자 밖으로 조금 벗어나는 구간은 허용 (격자 생성 시 잘림)
func ValidateFloorPlan(plan models.FloorPlan) error {
	if plan.Width <= 0 || plan.Height <= 0 ||
		plan.Width > algorithms.MaxGridDimension || plan.Height > algorithms.MaxGridDimension {
		return fmt.Errorf("잘못된 도면 크기: %dx%d (1..%d)", plan.Width, plan.Height, algorithms.MaxGridDimension)
	}
	for i, w := range plan.Walls {
		if !w.IsAxisAligned() {
			return fmt.Errorf("벽 #%d 가 축 정렬이 아닙니다: %+v", i, w)
		}
		if !coordsInRange(w.X1, w.Y1, w.X2, w.Y2) {
			return fmt.Errorf("벽 #%d 좌표가 범위를 벗어났습니다: %+v", i, w)
		}
	}
	for i, s := range plan.TrunkPaths {
		if !s.IsAxisAligned() {
			return fmt.Errorf("주 경로 #%d 가 축 정렬이 아닙니다: %+v", i, s)
		}
		if !coordsInRange(s.X1, s.Y1, s.X2, s.Y2) {
			return fmt.Errorf("주 경로 #%d 좌표가 범위를 벗어났습니다: %+v", i, s)
		}
	}
	for i, r := range plan.Rooms {
		if r.ID == "" {
			return fmt.Errorf("방 #%d 에 id 가 없습니다", i)
		}
		if !coordsInRange(r.X1, r.Y1, r.X2, r.Y2) {
			return fmt.Errorf("방 %s 좌표가 범위를 벗어났습니다", r.ID)
		}
	}
	return nil
}

// coordsInRange - 모든 좌표가 ±MaxGridDimension 이내인지
func coordsInRange(vs ...int) bool {
	for _, v := range vs {
		if v < -algorithms.MaxGridDimension || v > algorithms.MaxGridDimension {
			return false
		}
	}
	return true
}

// LoadFloorPlanFile - YAML 파일 하나 읽기. id 가 비어 있으면 파일 이름 사용
func LoadFloorPlanFile(path string) (models.FloorPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.FloorPlan{}, fmt.Errorf("도면 파일 읽기 실패 %s: %w", path, err)
	}
	plan, err := ParseFloorPlan(data)
	if err != nil {
		return models.FloorPlan{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if plan.ID == "" {
		plan.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return plan, nil
}

// LoadFloorPlanDir - 디렉터리의 *.yaml, *.yml 파일 모두 읽기
// 읽지 못한 파일은 경고만 남기고 건너뜀
func LoadFloorPlanDir(dir string) ([]models.FloorPlan, error) {
	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}

	log.Printf("📂 도면 파일 %d개 로드 중 (%s)", len(files), dir)

	plans := make([]models.FloorPlan, 0, len(files))
	for _, file := range files {
		plan, err := LoadFloorPlanFile(file)
		if err != nil {
			log.Printf("⚠️  도면 로드 실패: %v", err)
			continue
		}
		plans = append(plans, plan)
		log.Printf("   ✅ %s (%dx%d, 벽 %d, 주 경로 %d, 방 %d)",
			plan.ID, plan.Width, plan.Height, len(plan.Walls), len(plan.TrunkPaths), len(plan.Rooms))
	}
	return plans, nil
}
