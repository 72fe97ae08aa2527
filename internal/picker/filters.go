package picker

import (
	"strings"

	"github.com/alexanderramin/timesheet/internal/domain"
)

// AllBranches matches every branch in ByBranch.
const AllBranches = "all"

// ByBranch keeps users of branch. An empty name or AllBranches keeps
// everyone.
func ByBranch(branch string) Filter[domain.User] {
	if branch == "" || strings.EqualFold(branch, AllBranches) {
		return nil
	}
	return func(u domain.User) bool { return strings.EqualFold(u.Branch, branch) }
}

// ByType keeps users whose type is one of types. No types keeps everyone.
func ByType(types ...domain.UserType) Filter[domain.User] {
	if len(types) == 0 {
		return nil
	}
	return func(u domain.User) bool {
		for _, t := range types {
			if u.Type == t {
				return true
			}
		}
		return false
	}
}

// BySearch keeps users whose name or email contains text, ignoring case.
func BySearch(text string) Filter[domain.User] {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return nil
	}
	return func(u domain.User) bool {
		return strings.Contains(strings.ToLower(u.Name), needle) ||
			strings.Contains(strings.ToLower(u.Email), needle)
	}
}

// TaskSearch keeps tasks whose name contains text, ignoring case.
func TaskSearch(text string) Filter[domain.Task] {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return nil
	}
	return func(t domain.Task) bool { return strings.Contains(strings.ToLower(t.Name), needle) }
}
