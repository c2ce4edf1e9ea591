package skill

import "time"

// DefaultCategories returns the categories every new collection starts with.
func DefaultCategories() []Category {
	return []Category{
		{ID: "1", Name: "Frontend Development", Color: "#3B82F6"},
		{ID: "2", Name: "Backend Development", Color: "#10B981"},
		{ID: "3", Name: "Programming Languages", Color: "#F59E0B"},
		{ID: "4", Name: "Database", Color: "#8B5CF6"},
		{ID: "5", Name: "Design", Color: "#EF4444"},
		{ID: "6", Name: "DevOps", Color: "#6B7280"},
	}
}

// SeedSkills returns the sample skills loaded on first use of an empty store.
func SeedSkills() []Skill {
	ts := func(s string) time.Time {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			panic(err)
		}
		return t
	}
	date := func(y int, m time.Month, d int) *Date {
		dt := NewDate(y, m, d)
		return &dt
	}
	done := func(id, title, at string) Milestone {
		t := ts(at)
		return Milestone{ID: id, Title: title, Completed: true, CompletedAt: &t}
	}
	todo := func(id, title string) Milestone {
		return Milestone{ID: id, Title: title}
	}

	skills := []Skill{
		{
			ID:          "1",
			Name:        "React Development",
			Description: "Master modern React development with hooks, context, and advanced patterns",
			Category:    "Frontend Development",
			Milestones: []Milestone{
				done("1-1", "Components and props", "2025-01-05T00:00:00Z"),
				done("1-2", "Hooks", "2025-01-10T00:00:00Z"),
				done("1-3", "Context API", "2025-01-15T00:00:00Z"),
				todo("1-4", "Advanced patterns"),
			},
			TargetDate: date(2025, time.March, 15),
			CreatedAt:  ts("2025-01-01T00:00:00Z"),
			UpdatedAt:  ts("2025-01-15T00:00:00Z"),
		},
		{
			ID:          "2",
			Name:        "TypeScript Fundamentals",
			Description: "Learn TypeScript basics, advanced types, and best practices",
			Category:    "Programming Languages",
			Milestones: []Milestone{
				done("2-1", "Basic types", "2024-12-20T00:00:00Z"),
				done("2-2", "Interfaces and generics", "2025-01-05T00:00:00Z"),
				done("2-3", "Advanced types", "2025-01-20T00:00:00Z"),
				todo("2-4", "Project setup best practices"),
			},
			TargetDate: date(2025, time.February, 28),
			CreatedAt:  ts("2024-12-15T00:00:00Z"),
			UpdatedAt:  ts("2025-01-20T00:00:00Z"),
		},
		{
			ID:          "3",
			Name:        "Node.js Backend",
			Description: "Build scalable backend applications with Node.js and Express",
			Category:    "Backend Development",
			Milestones: []Milestone{
				done("3-1", "Express routing", "2025-01-22T00:00:00Z"),
				todo("3-2", "Middleware and error handling"),
			},
			TargetDate: date(2025, time.April, 30),
			CreatedAt:  ts("2025-01-10T00:00:00Z"),
			UpdatedAt:  ts("2025-01-22T00:00:00Z"),
		},
		{
			ID:          "4",
			Name:        "Database Design",
			Description: "Learn SQL, database normalization, and optimization techniques",
			Category:    "Database",
			Milestones: []Milestone{
				done("4-1", "SQL fundamentals", "2024-11-20T00:00:00Z"),
				done("4-2", "Normalization", "2024-12-05T00:00:00Z"),
				done("4-3", "Query optimization", "2024-12-20T00:00:00Z"),
			},
			CreatedAt: ts("2024-11-01T00:00:00Z"),
			UpdatedAt: ts("2024-12-20T00:00:00Z"),
		},
		{
			ID:          "5",
			Name:        "UI/UX Design Principles",
			Description: "Understand design thinking, user research, and interface design",
			Category:    "Design",
			Milestones: []Milestone{
				done("5-1", "Design thinking", "2025-01-22T00:00:00Z"),
				todo("5-2", "User research"),
				todo("5-3", "Wireframing"),
				todo("5-4", "Prototyping"),
				todo("5-5", "Usability testing"),
			},
			TargetDate: date(2025, time.June, 15),
			CreatedAt:  ts("2025-01-20T00:00:00Z"),
			UpdatedAt:  ts("2025-01-22T00:00:00Z"),
		},
		{
			ID:          "6",
			Name:        "DevOps Fundamentals",
			Description: "Learn CI/CD, containerization, and cloud deployment strategies",
			Category:    "DevOps",
			Milestones: []Milestone{
				todo("6-1", "CI pipelines"),
				todo("6-2", "Containers"),
				todo("6-3", "Cloud deployment"),
			},
			TargetDate: date(2025, time.August, 1),
			CreatedAt:  ts("2025-01-22T00:00:00Z"),
			UpdatedAt:  ts("2025-01-22T00:00:00Z"),
		},
	}
	for i := range skills {
		skills[i].Status = DeriveStatus(skills[i].Milestones)
	}
	return skills
}
