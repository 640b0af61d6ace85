package db

import (
	"context"
	"fmt"

	"github.com/chepyr/task-tracker-api/internal/models"
	"github.com/jmoiron/sqlx"
)

type CommentRepository struct {
	db sqlx.ExtContext
}

func NewCommentRepository(db sqlx.ExtContext) *CommentRepository {
	return &CommentRepository{db: db}
}

var commentSelect = fmt.Sprintf(`SELECT c.id, c.task_id, c.text, c.author_id, c.modifier_id,
	 c.creation_date, c.modification_date, c.active,
	 COALESCE(u.username, '%s') AS author_name,
	 COALESCE(t.title, '%s') AS task_title
	 FROM comments c
	 LEFT JOIN users u ON u.id = c.author_id
	 LEFT JOIN tasks t ON t.id = c.task_id`,
	UnknownUser, MissingTask)

func (r *CommentRepository) ListAll(ctx context.Context) ([]models.Comment, error) {
	comments := []models.Comment{}
	query := commentSelect + ` WHERE c.active = TRUE ORDER BY c.creation_date DESC, c.id DESC`
	if err := sqlx.SelectContext(ctx, r.db, &comments, query); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *CommentRepository) ListByTask(ctx context.Context, taskID int64) ([]models.Comment, error) {
	comments := []models.Comment{}
	query := r.db.Rebind(commentSelect +
		` WHERE c.task_id = ? AND c.active = TRUE ORDER BY c.creation_date DESC, c.id DESC`)
	if err := sqlx.SelectContext(ctx, r.db, &comments, query, taskID); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	query := r.db.Rebind(commentSelect + ` WHERE c.id = ?`)
	comment := &models.Comment{}
	if err := sqlx.GetContext(ctx, r.db, comment, query, id); err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `INSERT INTO comments (task_id, text, author_id, creation_date, active)
	 VALUES (?, ?, ?, ?, ?)`
	id, err := insertReturningID(ctx, r.db, query,
		comment.TaskID, comment.Text, comment.AuthorID, comment.CreationDate, comment.Active)
	if err != nil {
		return err
	}
	comment.ID = id
	return nil
}
