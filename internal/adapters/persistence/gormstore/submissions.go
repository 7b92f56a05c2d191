package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/printologia/printshop/internal/domain"
	"github.com/printologia/printshop/internal/ports"
)

var _ ports.SubmissionRepository = (*SubmissionRepository)(nil)

// SubmissionRepository implements ports.SubmissionRepository on the
// submissions table.
type SubmissionRepository struct {
	db *gorm.DB
}

func (r *SubmissionRepository) Save(ctx context.Context, submission *domain.Submission) error {
	m := newSubmissionModel(submission)

	return translate(r.db.WithContext(ctx).Create(&m).Error, "submission", submission.ID)
}

// Get returns an archived submission. It backs support lookups by the id
// on a customer's receipt.
func (r *SubmissionRepository) Get(ctx context.Context, id string) (*domain.Submission, error) {
	var m submissionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err, "submission", id)
	}

	return m.toDomain(), nil
}
