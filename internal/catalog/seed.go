package catalog

import "time"

// SeedDepartments is the demo department list used in development mode.
var SeedDepartments = []*Department{
	{ID: 1, Name: "Computer Science", Code: "CS"},
	{ID: 2, Name: "Software Engineering", Code: "SE"},
	{ID: 3, Name: "Data Science", Code: "DS"},
	{ID: 4, Name: "Cybersecurity", Code: "CYB"},
}

// SeedProjects returns a demo catalog for development mode.
func SeedProjects() []*Project {
	mk := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	return []*Project{
		{
			ID:           1,
			Title:        "AI-Powered Fake News Detection System",
			Description:  "A machine learning solution that uses NLP techniques to identify and classify fake news articles.",
			Category:     "Machine Learning",
			Technologies: []string{"Python", "TensorFlow", "NLP", "React"},
			Difficulty:   DifficultyHard,
			DepartmentID: 1,
			Department:   "Computer Science",
			Supervisor:   "Dr. Ahmad Hassan",
			Keywords:     "fake news detection nlp classification machine learning",
			Year:         2024,
			Views:        340,
			CreatedAt:    mk(2024, time.January, 15),
		},
		{
			ID:           2,
			Title:        "Smart Campus Energy Management IoT System",
			Description:  "An integrated IoT solution for monitoring and optimizing energy consumption across campus buildings.",
			Category:     "IoT & Embedded Systems",
			Technologies: []string{"Arduino", "MQTT", "Node.js", "InfluxDB"},
			Difficulty:   DifficultyMedium,
			DepartmentID: 1,
			Department:   "Computer Science",
			Supervisor:   "Prof. Sara Khan",
			Keywords:     "iot energy monitoring sensors campus automation",
			Year:         2024,
			Views:        215,
			CreatedAt:    mk(2024, time.January, 15),
		},
		{
			ID:           3,
			Title:        "Blockchain-Based Supply Chain Tracking Platform",
			Description:  "A decentralized platform for transparent tracking of products through the supply chain using smart contracts.",
			Category:     "Blockchain Technology",
			Technologies: []string{"Solidity", "Ethereum", "Go", "React"},
			Difficulty:   DifficultyHard,
			DepartmentID: 2,
			Department:   "Software Engineering",
			Supervisor:   "Dr. Omar Farooq",
			Keywords:     "blockchain supply chain smart contracts tracking",
			Year:         2024,
			Views:        180,
			CreatedAt:    mk(2024, time.January, 15),
		},
		{
			ID:           4,
			Title:        "Mental Health AI Chatbot",
			Description:  "An empathetic AI assistant providing mental health support with sentiment analysis and crisis detection.",
			Category:     "Artificial Intelligence",
			Technologies: []string{"Python", "PyTorch", "NLP", "Flutter"},
			Difficulty:   DifficultyHard,
			DepartmentID: 1,
			Department:   "Computer Science",
			Supervisor:   "Dr. Ayesha Siddique",
			Keywords:     "chatbot mental health sentiment analysis ai support",
			Year:         2023,
			Views:        410,
			CreatedAt:    mk(2023, time.August, 15),
		},
		{
			ID:           5,
			Title:        "AR Navigation System for University Campus",
			Description:  "An augmented reality mobile application providing interactive navigation for campus visitors.",
			Category:     "AR/VR Development",
			Technologies: []string{"Unity", "ARCore", "C#", "Firebase"},
			Difficulty:   DifficultyMedium,
			DepartmentID: 2,
			Department:   "Software Engineering",
			Supervisor:   "Prof. Noor Ahmed",
			Keywords:     "augmented reality navigation campus mobile",
			Year:         2023,
			Views:        150,
			CreatedAt:    mk(2023, time.August, 15),
		},
		{
			ID:           6,
			Title:        "Cybersecurity Threat Detection using Deep Learning",
			Description:  "Anomaly detection system for identifying zero-day attacks and security threats in network traffic.",
			Category:     "Cybersecurity",
			Technologies: []string{"Python", "TensorFlow", "Wireshark", "Elasticsearch"},
			Difficulty:   DifficultyHard,
			DepartmentID: 4,
			Department:   "Cybersecurity",
			Supervisor:   "Dr. Rashid Mahmood",
			Keywords:     "threat detection anomaly deep learning network security",
			Year:         2024,
			Views:        265,
			CreatedAt:    mk(2024, time.August, 15),
		},
		{
			ID:           7,
			Title:        "Student Performance Analytics Dashboard",
			Description:  "A data analytics platform that visualizes academic performance trends across departments.",
			Category:     "Data Science & Analytics",
			Technologies: []string{"Python", "Pandas", "D3.js", "PostgreSQL"},
			Difficulty:   DifficultyEasy,
			DepartmentID: 3,
			Department:   "Data Science",
			Supervisor:   "Dr. Imran Qureshi",
			Keywords:     "analytics dashboard visualization academic performance",
			Year:         2024,
			Views:        120,
			CreatedAt:    mk(2024, time.March, 10),
		},
		{
			ID:           8,
			Title:        "Cross-Platform Food Delivery Mobile App",
			Description:  "A mobile application connecting campus cafeterias with students for food ordering and delivery.",
			Category:     "Mobile Development",
			Technologies: []string{"Flutter", "Dart", "Firebase", "Stripe"},
			Difficulty:   DifficultyEasy,
			DepartmentID: 2,
			Department:   "Software Engineering",
			Supervisor:   "Prof. Hina Malik",
			Keywords:     "mobile app food delivery campus ordering",
			Year:         2025,
			Views:        95,
			CreatedAt:    mk(2025, time.February, 1),
		},
	}
}
