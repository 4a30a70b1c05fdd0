package config

// DefaultCategories returns the built-in category set used when the
// configuration file defines none. IDs are stable; the rotation scheduler
// and the persisted dataset key on them.
func DefaultCategories() []Category {
	return []Category{
		{
			ID:          "web-automation",
			Name:        "Web Automation",
			Description: "Browser automation and end-to-end testing frameworks",
			SearchTerms: []string{"selenium webdriver", "playwright testing", "cypress e2e", "browser automation"},
			Languages:   []string{"JavaScript", "TypeScript", "Python", "Java"},
		},
		{
			ID:          "api-testing",
			Name:        "API Testing",
			Description: "REST, GraphQL and contract testing tools",
			SearchTerms: []string{"api testing framework", "rest assured", "contract testing", "graphql testing"},
			Languages:   []string{"Java", "Go", "JavaScript", "Python"},
		},
		{
			ID:          "performance-testing",
			Name:        "Performance Testing",
			Description: "Load and stress testing tools",
			SearchTerms: []string{"load testing tool", "performance testing", "stress testing benchmark"},
			Languages:   []string{"Go", "Scala", "Python", "JavaScript"},
		},
		{
			ID:          "mobile-testing",
			Name:        "Mobile Testing",
			Description: "Mobile app automation for Android and iOS",
			SearchTerms: []string{"appium mobile testing", "android ui testing", "ios ui testing"},
			Languages:   []string{"Java", "Kotlin", "Swift", "JavaScript"},
		},
		{
			ID:          "unit-testing",
			Name:        "Unit Testing",
			Description: "Unit test frameworks, runners and assertion libraries",
			SearchTerms: []string{"unit testing framework", "test runner", "assertion library", "mocking library"},
			Languages:   []string{"JavaScript", "Python", "Java", "Go", "C#"},
		},
		{
			ID:          "bdd-frameworks",
			Name:        "BDD Frameworks",
			Description: "Behavior-driven development and specification tools",
			SearchTerms: []string{"bdd framework", "cucumber gherkin", "behavior driven development"},
			Languages:   []string{"Java", "Ruby", "JavaScript", "Python"},
		},
		{
			ID:          "test-data",
			Name:        "Test Data",
			Description: "Test data generation, fixtures and fakers",
			SearchTerms: []string{"test data generator", "faker library", "fixtures testing"},
			Languages:   []string{"Python", "JavaScript", "Java", "Go"},
		},
		{
			ID:          "visual-regression",
			Name:        "Visual Regression",
			Description: "Screenshot comparison and visual testing tools",
			SearchTerms: []string{"visual regression testing", "screenshot testing", "visual diff tool"},
			Languages:   []string{"JavaScript", "TypeScript", "Python"},
		},
	}
}
