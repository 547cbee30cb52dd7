package mappers

import (
	"fmt"

	"studia/internal/domain/course"
	"studia/internal/infrastructure/persistence/models"
	"studia/internal/shared/utils"
)

// CourseToModel converts a course aggregate to its persistence model.
func CourseToModel(c *course.Course) *models.CourseModel {
	return &models.CourseModel{
		ID:            c.ID(),
		SID:           c.SID(),
		AuthorID:      c.AuthorID(),
		Title:         c.Title(),
		Description:   c.Description(),
		SearchText:    utils.FoldSearchText(c.Title() + " " + c.Description()),
		PriceCents:    c.PriceCents(),
		Currency:      c.Currency(),
		VideoURL:      c.VideoURL(),
		PDFURL:        c.PDFURL(),
		Published:     c.IsPublished(),
		BoostedUntil:  c.BoostedUntil(),
		LastBoostedAt: c.LastBoostedAt(),
		Version:       c.Version(),
		CreatedAt:     c.CreatedAt(),
		UpdatedAt:     c.UpdatedAt(),
	}
}

// CourseToDomain converts a persistence model back to the aggregate.
func CourseToDomain(model *models.CourseModel) (*course.Course, error) {
	c, err := course.ReconstructCourse(course.CourseReconstructParams{
		ID:            model.ID,
		SID:           model.SID,
		AuthorID:      model.AuthorID,
		Title:         model.Title,
		Description:   model.Description,
		PriceCents:    model.PriceCents,
		Currency:      model.Currency,
		VideoURL:      model.VideoURL,
		PDFURL:        model.PDFURL,
		Published:     model.Published,
		BoostedUntil:  model.BoostedUntil,
		LastBoostedAt: model.LastBoostedAt,
		Version:       model.Version,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct course entity: %w", err)
	}
	return c, nil
}
