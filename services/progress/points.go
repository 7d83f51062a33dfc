package progress

import (
	courseModels "lms/models/course"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AddPoints atomically increments the user's running total, creating the
// row on first award. The increment happens in the store, never as a
// read-then-write of the total.
func (s *Service) AddPoints(userID uint, amount int) error {
	if amount < 0 {
		return ErrNegativeAmount
	}
	return s.addPointsTx(s.db, userID, amount)
}

func (s *Service) addPointsTx(tx *gorm.DB, userID uint, amount int) error {
	if amount < 0 {
		return ErrNegativeAmount
	}
	row := courseModels.LearnerPoints{UserID: userID, TotalPoints: amount}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_points": gorm.Expr("total_points + ?", amount),
			"updated_at":   s.now(),
		}),
	}).Create(&row).Error
}

// Total returns the user's current point total, zero if none recorded.
func (s *Service) Total(userID uint) (int, error) {
	var row courseModels.LearnerPoints
	err := s.db.Where("user_id = ?", userID).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}
	return row.TotalPoints, nil
}

// Rank maps a point total to the highest tier reached.
func (s *Service) Rank(total int) string {
	label := DefaultRankLabel
	for _, tier := range s.ranks {
		if total >= tier.MinPoints {
			label = tier.Label
		}
	}
	return label
}

// PointsAndRank returns the total together with its rank label.
func (s *Service) PointsAndRank(userID uint) (int, string, error) {
	total, err := s.Total(userID)
	if err != nil {
		return 0, "", err
	}
	return total, s.Rank(total), nil
}
