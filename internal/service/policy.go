package service

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/chepyr/task-tracker-api/internal/models"
)

// Effects are the rows a mutation must write alongside itself.
type Effects struct {
	History       []models.History
	Notifications []models.Notification
}

const commentPreviewLen = 100

func historyEntry(taskID, actorID int64, action, description string, now time.Time) models.History {
	actor := actorID
	return models.History{
		TaskID:       taskID,
		Action:       action,
		Description:  description,
		ActorID:      &actor,
		CreationDate: now,
		Active:       true,
	}
}

func notification(userID, taskID int64, kind, title, message string, now time.Time) models.Notification {
	return models.Notification{
		UserID:       userID,
		TaskID:       taskID,
		Title:        title,
		Message:      message,
		Type:         kind,
		CreationDate: now,
		Active:       true,
	}
}

// TaskCreatedEffects records the creation and notifies the assignee unless
// the creator assigned the task to themselves.
func TaskCreatedEffects(task *models.Task, actorID int64, actorName string, now time.Time) Effects {
	effects := Effects{History: []models.History{
		historyEntry(task.ID, actorID, models.ActionCreated, fmt.Sprintf("Task created: %q", task.Title), now),
	}}
	if task.AssigneeID != actorID {
		effects.Notifications = append(effects.Notifications, notification(
			task.AssigneeID, task.ID, models.NotificationTaskAssigned, "New task assigned",
			fmt.Sprintf("You have been assigned the task '%s' by %s", task.Title, actorName), now))
	}
	return effects
}

// TaskUpdatedEffects diffs the stored and refreshed task. History is only
// written when a tracked field changed; the final assignee is notified
// unless they made the change.
func TaskUpdatedEffects(before, after *models.Task, actorID int64, actorName string, now time.Time) Effects {
	var effects Effects
	if changes := taskChanges(before, after); len(changes) > 0 {
		effects.History = append(effects.History, historyEntry(after.ID, actorID, models.ActionUpdated,
			"Changes made:\n"+strings.Join(changes, "\n"), now))
	}
	if after.AssigneeID == actorID {
		return effects
	}
	if before.AssigneeID != after.AssigneeID {
		effects.Notifications = append(effects.Notifications, notification(
			after.AssigneeID, after.ID, models.NotificationTaskReassigned, "Task reassigned",
			fmt.Sprintf("You have been reassigned the task '%s' by %s", after.Title, actorName), now))
	} else {
		effects.Notifications = append(effects.Notifications, notification(
			after.AssigneeID, after.ID, models.NotificationTaskUpdated, "Task updated",
			fmt.Sprintf("The task '%s' has been updated by %s", after.Title, actorName), now))
	}
	return effects
}

func taskChanges(before, after *models.Task) []string {
	var changes []string
	if before.Title != after.Title {
		changes = append(changes, fmt.Sprintf("Title: %q → %q", before.Title, after.Title))
	}
	if before.Description != after.Description {
		changes = append(changes, "Description changed")
	}
	if before.StateID != after.StateID {
		changes = append(changes, fmt.Sprintf("State: %q → %q", before.StateName, after.StateName))
	}
	if before.PriorityID != after.PriorityID {
		changes = append(changes, fmt.Sprintf("Priority: %q → %q", before.PriorityName, after.PriorityName))
	}
	if before.AssigneeID != after.AssigneeID {
		changes = append(changes, fmt.Sprintf("Assigned to: %q → %q", before.AssigneeName, after.AssigneeName))
	}
	return changes
}

func TaskDeletedEffects(task *models.Task, actorID int64, now time.Time) Effects {
	return Effects{History: []models.History{
		historyEntry(task.ID, actorID, models.ActionDeleted, fmt.Sprintf("Task deleted: %q", task.Title), now),
	}}
}

// CommentAddedEffects records a preview of the comment. Comments never notify.
func CommentAddedEffects(comment *models.Comment, actorID int64, now time.Time) Effects {
	return Effects{History: []models.History{
		historyEntry(comment.TaskID, actorID, models.ActionCommented,
			fmt.Sprintf("Comment added: %q", preview(comment.Text, commentPreviewLen)), now),
	}}
}

func preview(text string, max int) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	return string([]rune(text)[:max]) + "..."
}
