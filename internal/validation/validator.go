package validation

import (
	"fmt"
	"strings"

	"github.com/community-forum-api/internal/models"
)

// ValidationError represents a single field-level validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Errors is a collection of field-level validation errors. It
// implements error so services can hand it back through the normal
// error path and handlers can pick it apart with errors.As.
type Errors []ValidationError

func (e Errors) Error() string {
	if len(e) == 1 {
		return e[0].Message
	}
	return fmt.Sprintf("validation failed with %d errors", len(e))
}

// Messages flattens the errors into the list shape the response
// envelope carries.
func (e Errors) Messages() []string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Message)
	}
	return msgs
}

// ValidateTopicCreate validates a topic creation payload. Required
// fields are checked at the HTTP boundary; this covers enum values,
// length caps and the tag limit.
func ValidateTopicCreate(req *models.TopicCreateRequest) Errors {
	var errors Errors

	errors = append(errors, checkTopicCore(req.Title, req.Description, req.Category, req.Type)...)

	if len(req.Tags) > models.MaxTags {
		errors = append(errors, ValidationError{Field: "tags", Message: "Cannot have more than 10 tags"})
	}

	if req.Attachment != nil && !models.ValidAttachmentTypes[req.Attachment.Type] {
		errors = append(errors, ValidationError{
			Field:   "attachment.type",
			Message: "attachment type must be one of: none, image, video, link",
			Value:   req.Attachment.Type,
		})
	}

	return errors
}

// ValidateTopicUpdate validates a topic update payload. Same rules as
// creation, plus the optional status field.
func ValidateTopicUpdate(req *models.TopicUpdateRequest) Errors {
	var errors Errors

	errors = append(errors, checkTopicCore(req.Title, req.Description, req.Category, req.Type)...)

	if len(req.Tags) > models.MaxTags {
		errors = append(errors, ValidationError{Field: "tags", Message: "Cannot have more than 10 tags"})
	}

	if req.Status != "" && !models.ValidTopicStatuses[req.Status] {
		errors = append(errors, ValidationError{
			Field:   "status",
			Message: "status must be one of: active, closed, archived",
			Value:   req.Status,
		})
	}

	if req.Attachment != nil && !models.ValidAttachmentTypes[req.Attachment.Type] {
		errors = append(errors, ValidationError{
			Field:   "attachment.type",
			Message: "attachment type must be one of: none, image, video, link",
			Value:   req.Attachment.Type,
		})
	}

	return errors
}

// checkTopicCore validates the fields shared by create and update.
// Title and description are stored trimmed, so whitespace-only values
// count as missing.
func checkTopicCore(title, description, category, topicType string) Errors {
	var errors Errors

	trimmedTitle := strings.TrimSpace(title)
	if trimmedTitle == "" {
		errors = append(errors, ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}
	if len(trimmedTitle) > models.MaxTitleLength {
		errors = append(errors, ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title cannot exceed %d characters", models.MaxTitleLength),
		})
	}

	if strings.TrimSpace(description) == "" {
		errors = append(errors, ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}

	if category != "" && !models.ValidCategories[category] {
		errors = append(errors, ValidationError{
			Field:   "category",
			Message: fmt.Sprintf("%q is not a valid category", category),
			Value:   category,
		})
	}

	if topicType != "" && !models.ValidTopicTypes[topicType] {
		errors = append(errors, ValidationError{
			Field:   "type",
			Message: fmt.Sprintf("%q is not a valid topic type", topicType),
			Value:   topicType,
		})
	}

	return errors
}

// ValidateTicketCreate validates a ticket creation payload
func ValidateTicketCreate(req *models.TicketCreateRequest) Errors {
	var errors Errors

	if req.Priority != "" && !models.ValidPriorities[req.Priority] {
		errors = append(errors, ValidationError{
			Field:   "priority",
			Message: "priority must be one of: Low, Medium, High, Critical",
			Value:   req.Priority,
		})
	}

	if req.Category != "" && !models.ValidTicketCategories[req.Category] {
		errors = append(errors, ValidationError{
			Field:   "category",
			Message: fmt.Sprintf("%q is not a valid ticket category", req.Category),
			Value:   req.Category,
		})
	}

	return errors
}

// ValidateTicketUpdate validates a ticket update payload
func ValidateTicketUpdate(req *models.TicketUpdateRequest) Errors {
	var errors Errors

	if req.Priority != nil && !models.ValidPriorities[*req.Priority] {
		errors = append(errors, ValidationError{
			Field:   "priority",
			Message: "priority must be one of: Low, Medium, High, Critical",
			Value:   *req.Priority,
		})
	}

	if req.Status != nil && !models.ValidTicketStatuses[*req.Status] {
		errors = append(errors, ValidationError{
			Field:   "status",
			Message: "status must be one of: Open, In Progress, Resolved, Closed",
			Value:   *req.Status,
		})
	}

	if req.Category != nil && !models.ValidTicketCategories[*req.Category] {
		errors = append(errors, ValidationError{
			Field:   "category",
			Message: fmt.Sprintf("%q is not a valid ticket category", *req.Category),
			Value:   *req.Category,
		})
	}

	return errors
}
