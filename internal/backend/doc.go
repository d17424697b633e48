// Package backend provides an HTTP client for the dashboard REST API.
//
// # Overview
//
// The backend aggregates Google, GitHub and Jira data and stores the todo
// list. perch never talks to those services directly; every widget reads and
// writes through this client.
//
//   - client.go: HTTP client, request handling and error classes
//   - types.go: Data structures mirroring the API schema
//
// # Client Usage
//
//	client, err := backend.NewClient("localhost:8000",
//		backend.WithTimeout(30*time.Second),
//		backend.WithLogger(logger),
//	)
//	if err != nil {
//		return err
//	}
//	todos, err := client.Todos(ctx)
//
// The scheme defaults to "http://" when omitted, and an empty base URL means
// http://localhost:8000.
//
// # API Endpoints
//
//   - GET    /api/v1/todos/            list todos
//   - POST   /api/v1/todos/            create {title}
//   - PUT    /api/v1/todos/{id}        update {title, completed}
//   - DELETE /api/v1/todos/{id}        delete
//   - POST   /api/v1/todos/reorder     {order: [id, ...]}
//   - GET    /api/v1/calendar/events   today's events
//   - GET    /api/v1/github/prs        PRs awaiting review
//   - GET    /api/v1/github/my-prs     own open PRs with merge state
//   - GET    /api/v1/jira/tasks        assigned issues
//   - GET    /api/v1/jira/notifications
//   - GET    /api/v1/gmail/unread      {count}
//   - GET    /api/v1/demo-mode         {demo_mode}
//   - GET    /api/v1/google/auth-status {status, message, auth_url}
//
// # Request Handling
//
// Every request carries Accept: application/json, a perch User-Agent and a
// fresh X-Request-ID (a ULID) that is also attached to log records.
//
// # Error Handling
//
// Errors fall into three classes, matched with errors.Is:
//
//   - ErrTransport: connection refused, timeout, DNS failure
//   - ErrStatus: any response outside 2xx, carried as *StatusError with the
//     message "HTTP <code>: <text>"
//   - ErrDecode: a success response whose body is not the expected JSON
//
// The client never retries. Callers decide what a failure means.
//
// # Timestamp Parsing
//
// PullRequest and CalendarEvent expose Parsed* helpers accepting RFC3339,
// RFC3339Nano, naive "2006-01-02T15:04:05" (local time) and bare dates.
// Invalid or missing timestamps return the zero time.
//
// # Thread Safety
//
// Client is safe for concurrent use.
package backend
