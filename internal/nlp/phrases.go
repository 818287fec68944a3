package nlp

// DefaultPhrases is the built-in skills phrase set the matcher always
// carries, independent of what the vocabulary store holds. It covers
// the technology terms job descriptions mention most.
func DefaultPhrases() []string {
	return []string{
		// languages
		"python", "javascript", "typescript", "java", "c#", "c++", "c", "php",
		"ruby", "go", "golang", "rust", "swift", "kotlin", "scala", "r", "matlab", "sql",

		// web frameworks and front-end
		"react", "react native", "next.js", "angular", "vue", "vue.js", "node.js",
		"express", "django", "flask", "fastapi", "spring", "spring boot", "laravel",
		"rails", "ruby on rails", "asp.net", "html", "css", "sass", "bootstrap",
		"tailwind", "jquery", "redux", "graphql", "rest api", "rest",

		// data stores
		"mysql", "postgresql", "postgres", "mongodb", "redis", "elasticsearch",
		"cassandra", "oracle", "sql server", "sqlite", "dynamodb", "firebase",

		// cloud and devops
		"aws", "amazon web services", "azure", "gcp", "google cloud",
		"docker", "kubernetes", "k8s", "jenkins", "terraform", "ansible",
		"git", "github", "gitlab", "ci/cd", "nginx", "apache", "linux",

		// data and ml
		"machine learning", "deep learning", "data science", "data analysis",
		"pandas", "numpy", "scikit-learn", "tensorflow", "pytorch", "nlp",
		"computer vision", "spark", "hadoop", "kafka", "airflow",

		// practices
		"agile", "scrum", "microservices", "unit testing", "tdd",
		"object oriented programming", "design patterns", "distributed systems",
	}
}
