// comments.go
//
// Family photo sharing backend for kids' memories.

package services

import (
	"sort"
	"strings"

	"github.com/NgocTV11/kids-memories-backend/internal/models"
	"github.com/NgocTV11/kids-memories-backend/internal/types"
	"gorm.io/gorm"
)

// CommentInput carries the fields for creating a comment or reply.
type CommentInput struct {
	PhotoID         string  `json:"photo_id" validate:"required"`
	Content         string  `json:"content" validate:"required"`
	ParentCommentID *string `json:"parent_comment_id"`
}

// CommentNode is one comment with its reply subtree. Replies are ordered by
// creation time ascending at every level.
type CommentNode struct {
	models.Comment
	RepliesCount int           `json:"replies_count"`
	Replies      []CommentNode `json:"replies"`
}

// CreateComment creates a comment or a reply. The photo must belong to one of
// the actor's albums; a reply's parent must be an active comment on the same
// photo. Row and counter move in one transaction.
func CreateComment(db *gorm.DB, userID string, in CommentInput) (*CommentNode, error) {
	if _, err := findOwnedPhoto(db, userID, in.PhotoID); err != nil {
		return nil, err
	}

	if in.ParentCommentID != nil && *in.ParentCommentID != "" {
		var count int64
		err := db.Model(&models.Comment{}).
			Where("id = ? AND photo_id = ? AND is_deleted = ?", *in.ParentCommentID, in.PhotoID, false).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, types.NotFound("Parent comment not found or does not belong to this photo")
		}
	}

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, types.BadRequest("Comment content is required")
	}

	comment := models.Comment{
		PhotoID: in.PhotoID,
		UserID:  userID,
		Content: content,
	}
	if in.ParentCommentID != nil && *in.ParentCommentID != "" {
		comment.ParentCommentID = in.ParentCommentID
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Photo{}).Where("id = ?", in.PhotoID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}

	db.Preload("User").First(&comment, "id = ?", comment.ID)
	return &CommentNode{Comment: comment, Replies: []CommentNode{}}, nil
}

// CommentsByPhoto returns the photo's comment tree: top-level comments with
// nested replies, every level ascending by creation time. Soft-deleted
// comments are pruned together with their subtrees.
func CommentsByPhoto(db *gorm.DB, userID, photoID string) ([]CommentNode, error) {
	if _, err := findOwnedPhoto(db, userID, photoID); err != nil {
		return nil, err
	}

	var comments []models.Comment
	err := db.Where("photo_id = ? AND is_deleted = ?", photoID, false).
		Preload("User").
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	return buildCommentTree(comments, nil), nil
}

// GetComment returns one comment with its reply subtree.
func GetComment(db *gorm.DB, userID, commentID string) (*CommentNode, error) {
	var comment models.Comment
	err := db.Joins("JOIN photos ON photos.id = comments.photo_id").
		Joins("JOIN albums ON albums.id = photos.album_id").
		Where("comments.id = ? AND comments.is_deleted = ?", commentID, false).
		Where("photos.is_deleted = ? AND albums.is_deleted = ? AND albums.created_by = ?", false, false, userID).
		Preload("User").
		First(&comment).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound("Comment not found or you do not have access")
		}
		return nil, err
	}

	var siblings []models.Comment
	err = db.Where("photo_id = ? AND is_deleted = ?", comment.PhotoID, false).
		Preload("User").
		Order("created_at ASC").
		Find(&siblings).Error
	if err != nil {
		return nil, err
	}

	subtree := buildCommentTree(siblings, &comment.ID)
	node := CommentNode{Comment: comment, RepliesCount: len(subtree), Replies: subtree}
	return &node, nil
}

// UpdateComment edits the content. Author only; editing someone else's
// comment is a 403 even when the comment is visible.
func UpdateComment(db *gorm.DB, userID, commentID, content string) (*CommentNode, error) {
	comment, err := findAuthoredComment(db, userID, commentID)
	if err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, types.BadRequest("Comment content is required")
	}

	comment.Content = content
	if err := db.Save(comment).Error; err != nil {
		return nil, err
	}

	db.Preload("User").First(comment, "id = ?", comment.ID)
	return &CommentNode{Comment: *comment, Replies: []CommentNode{}}, nil
}

// SoftDeleteComment hides the comment, keeping replies intact in storage.
// Author only. The photo's counter stays as is; it counts created comments,
// not visible ones.
func SoftDeleteComment(db *gorm.DB, userID, commentID string) error {
	comment, err := findAuthoredComment(db, userID, commentID)
	if err != nil {
		return err
	}
	return db.Model(&models.Comment{}).Where("id = ?", comment.ID).
		Update("is_deleted", true).Error
}

func findAuthoredComment(db *gorm.DB, userID, commentID string) (*models.Comment, error) {
	var comment models.Comment
	err := db.Where("id = ? AND user_id = ? AND is_deleted = ?", commentID, userID, false).
		First(&comment).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.Forbidden("You can only edit your own comments")
		}
		return nil, err
	}
	return &comment, nil
}

// buildCommentTree assembles the reply tree from a flat creation-ordered
// slice. parentID nil selects the top level.
func buildCommentTree(comments []models.Comment, parentID *string) []CommentNode {
	children := make(map[string][]models.Comment)
	var roots []models.Comment
	for _, c := range comments {
		if c.ParentCommentID == nil {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentCommentID] = append(children[*c.ParentCommentID], c)
	}

	var build func(list []models.Comment) []CommentNode
	build = func(list []models.Comment) []CommentNode {
		nodes := make([]CommentNode, 0, len(list))
		for _, c := range list {
			replies := build(children[c.ID])
			nodes = append(nodes, CommentNode{
				Comment:      c,
				RepliesCount: len(children[c.ID]),
				Replies:      replies,
			})
		}
		sort.SliceStable(nodes, func(i, j int) bool {
			return nodes[i].CreatedAt.Before(nodes[j].CreatedAt)
		})
		return nodes
	}

	if parentID == nil {
		return build(roots)
	}
	return build(children[*parentID])
}
