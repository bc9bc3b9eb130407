package store

import (
	"time"

	"taskboard/internal/models"
)

// SeedTasks returns the default dataset used when no collection has been
// persisted yet, or when the persisted blob cannot be read.
func SeedTasks() []models.Task {
	ts := func(s string) time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return t
	}
	mk := func(id, title, desc string, status models.TaskStatus, due, created string) models.Task {
		return models.Task{
			ID:          id,
			Title:       title,
			Description: desc,
			Status:      status,
			DueDate:     due,
			CreatedAt:   ts(created),
			UpdatedAt:   ts(created),
		}
	}

	return []models.Task{
		mk("1", "Set up project structure",
			"Create the initial project structure with all necessary folders and files for the Tasks Management application",
			models.StatusCompleted, "2025-07-15", "2025-07-08T10:00:00Z"),
		mk("2", "Implement authentication system",
			"Add comprehensive user authentication with login, registration, and session management functionality",
			models.StatusInProgress, "2025-07-20", "2025-07-09T14:30:00Z"),
		mk("3", "Design database schema",
			"Create comprehensive database schema for all application entities including users, tasks, and relationships",
			models.StatusPending, "2025-07-25", "2025-07-10T09:15:00Z"),
		mk("4", "Write comprehensive unit tests",
			"Implement full test coverage for all core functionality including CRUD operations, authentication, and edge cases",
			models.StatusPending, "2025-07-30", "2025-07-10T11:45:00Z"),
		mk("5", "Deploy to production environment",
			"Set up CI/CD pipeline, configure production environment, and deploy the application with monitoring",
			models.StatusPending, "2025-08-05", "2025-07-10T16:20:00Z"),
		mk("6", "Implement real-time notifications",
			"Add WebSocket-based real-time notifications for task updates and team collaboration features",
			models.StatusPending, "2025-08-10", "2025-07-10T17:00:00Z"),
		mk("7", "Performance optimization",
			"Optimize application performance including code splitting, lazy loading, and caching strategies",
			models.StatusPending, "2025-08-15", "2025-07-10T18:30:00Z"),
		mk("8", "Create API documentation",
			"Write comprehensive API documentation using OpenAPI/Swagger with examples and best practices",
			models.StatusCompleted, "2025-07-12", "2025-07-08T09:00:00Z"),
		mk("9", "Setup monitoring and logging",
			"Implement application monitoring, error tracking, and structured logging for production environment",
			models.StatusInProgress, "2025-07-28", "2025-07-09T13:20:00Z"),
		mk("10", "Mobile responsive design",
			"Ensure application is fully responsive and optimized for mobile devices and tablets",
			models.StatusCompleted, "2025-07-18", "2025-07-08T15:45:00Z"),
		mk("11", "Implement search functionality",
			"Add full-text search capabilities for tasks with filters and advanced search options",
			models.StatusPending, "2025-08-01", "2025-07-10T12:30:00Z"),
		mk("12", "Security audit and penetration testing",
			"Conduct comprehensive security assessment including vulnerability scanning and penetration testing",
			models.StatusPending, "2025-08-12", "2025-07-10T14:15:00Z"),
		mk("13", "User onboarding flow",
			"Design and implement guided user onboarding with tutorials and interactive elements",
			models.StatusInProgress, "2025-07-22", "2025-07-09T11:00:00Z"),
		mk("14", "Data backup and recovery system",
			"Implement automated backup system with disaster recovery procedures and data retention policies",
			models.StatusPending, "2025-08-20", "2025-07-10T16:45:00Z"),
		mk("15", "Accessibility compliance (WCAG 2.1)",
			"Ensure application meets WCAG 2.1 AA standards for accessibility and screen reader compatibility",
			models.StatusPending, "2025-08-08", "2025-07-10T10:20:00Z"),
		mk("16", "Email notification system",
			"Implement email notifications for task deadlines, assignments, and status changes",
			models.StatusCompleted, "2025-07-14", "2025-07-08T12:15:00Z"),
		mk("17", "Team collaboration features",
			"Add team workspaces, task assignment, comments, and collaborative editing capabilities",
			models.StatusInProgress, "2025-08-03", "2025-07-09T16:30:00Z"),
		mk("18", "Analytics and reporting dashboard",
			"Create comprehensive dashboard with task analytics, team productivity metrics, and custom reports",
			models.StatusPending, "2025-08-25", "2025-07-10T19:00:00Z"),
		mk("19", "Third-party integrations",
			"Integrate with popular tools like Slack, Microsoft Teams, and project management platforms",
			models.StatusPending, "2025-09-01", "2025-07-10T20:15:00Z"),
		mk("20", "Internationalization (i18n)",
			"Add multi-language support with localization for major languages and regional settings",
			models.StatusPending, "2025-09-15", "2025-07-10T21:30:00Z"),
	}
}
