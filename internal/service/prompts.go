package service

import (
	"encoding/json"
	"fmt"
)

// Prompt templates for each artifact kind. The JSON skeletons in the
// templates pin the shape the model is asked to return; the parse
// constructors in internal/model enforce it on the way back in.

const systemPrompt = "You are an educational content generator for a virtual school. " +
	"Always respond with a single JSON object and nothing else — no prose, no Markdown fences."

func quizPrompt(topic string, numQuestions int) string {
	return fmt.Sprintf(`
Create a quiz on the topic "%s".
Include %d multiple-choice questions with 4 options each.
Make sure questions are educational and appropriate.
Return only a JSON object like this:

{
  "title": "Quiz on %s",
  "description": "Test your knowledge on %s",
  "questions": [
    {
      "id": 1,
      "question": "Question text",
      "options": ["option1", "option2", "option3", "option4"],
      "correctAnswer": "option2",
      "explanation": "Brief explanation of why this is correct"
    }
  ]
}
`, topic, numQuestions, topic, topic)
}

func notesPrompt(topic, gradeLevel string) string {
	return fmt.Sprintf(`
Create educational notes on the topic "%s" for grade level "%s".
Make the content appropriate for the specified grade level.
Include key concepts, definitions, and examples.
Return only a JSON object like this:

{
  "title": "Notes: %s",
  "gradeLevel": "%s",
  "sections": [
    {
      "heading": "Introduction",
      "content": "Detailed explanation...",
      "keyPoints": ["point1", "point2", "point3"]
    },
    {
      "heading": "Key Concepts",
      "content": "Detailed explanation...",
      "keyPoints": ["concept1", "concept2"]
    }
  ],
  "summary": "Brief summary of the topic"
}
`, topic, gradeLevel, topic, gradeLevel)
}

func flashcardsPrompt(topic string) string {
	return fmt.Sprintf(`
Create flashcards on the topic "%s".
Generate 10-15 flashcards with questions and answers for study purposes.
Return only a JSON object like this:

{
  "title": "Flashcards: %s",
  "cards": [
    {
      "id": 1,
      "front": "Question or term",
      "back": "Answer or definition",
      "difficulty": "easy"
    }
  ]
}
`, topic, topic)
}

func assignmentPrompt(topic, gradeLevel string) string {
	return fmt.Sprintf(`
Create an assignment on the topic "%s" for grade level "%s".
Include different types of questions and tasks appropriate for the grade level.
Return only a JSON object like this:

{
  "title": "Assignment: %s",
  "gradeLevel": "%s",
  "instructions": "Complete all sections of this assignment...",
  "estimatedTime": "30-45 minutes",
  "sections": [
    {
      "type": "multiple-choice",
      "title": "Multiple Choice Questions",
      "questions": [
        {
          "question": "Question text",
          "options": ["A", "B", "C", "D"],
          "correctAnswer": "B",
          "points": 2
        }
      ]
    },
    {
      "type": "short-answer",
      "title": "Short Answer Questions",
      "questions": [
        {
          "question": "Question text",
          "expectedLength": "2-3 sentences",
          "points": 5
        }
      ]
    }
  ],
  "totalPoints": 25
}
`, topic, gradeLevel, topic, gradeLevel)
}

func feedbackPrompt(studentData map[string]interface{}) string {
	encoded, _ := json.MarshalIndent(studentData, "", "  ")
	return fmt.Sprintf(`
Analyze the following student performance data and provide constructive feedback:
%s

Return only a JSON object like this:

{
  "overallScore": 85,
  "strengths": ["Good understanding of concepts", "Strong analytical skills"],
  "improvements": ["Work on time management", "Review chapter 3"],
  "recommendations": [
    {
      "topic": "Mathematics",
      "action": "Practice more word problems",
      "resources": ["Khan Academy", "Textbook Ch. 5"]
    }
  ],
  "encouragement": "Great work! Keep practicing and you'll improve even more."
}
`, string(encoded))
}

func tutorPrompt(question, gradeLevel string) string {
	if gradeLevel == "" {
		gradeLevel = "general"
	}
	return fmt.Sprintf(`
You are an AI tutor helping a student at grade level "%s".
The student asked: "%s"

Provide a helpful, educational response that explains the concept clearly with examples.
Use age-appropriate language and provide step-by-step explanations when needed.
Return only a JSON object like this:

{
  "response": "Clear explanation of the concept...",
  "examples": [
    "Example 1: Detailed example",
    "Example 2: Another example"
  ],
  "relatedTopics": ["Topic 1", "Topic 2"],
  "practiceQuestions": [
    "Practice question 1",
    "Practice question 2"
  ],
  "difficulty": "beginner"
}
`, gradeLevel, question)
}

// Image augmentation prompts.

func quizImagePrompt(topic string) string {
	return fmt.Sprintf("Create an educational illustration for a quiz about %s. "+
		"Make it colorful, engaging, and suitable for learning. "+
		"The image should be informative and visually appealing.", topic)
}

func notesImagePrompt(topic, gradeLevel string) string {
	return fmt.Sprintf("Create an educational diagram or illustration for study notes about %s "+
		"for grade level %s. Make it clear, informative, and age-appropriate. "+
		"Include visual elements that help explain the concept.", topic, gradeLevel)
}

func flashcardsImagePrompt(topic string) string {
	return fmt.Sprintf("Create a colorful, educational illustration for flashcards about %s. "+
		"Make it visually appealing and helpful for memorization. "+
		"Include relevant symbols, diagrams, or icons related to %s.", topic, topic)
}

func cardImagePrompt(front, topic string) string {
	return fmt.Sprintf("Create a simple illustration for the flashcard about %q related to %s. "+
		"Make it clear and educational.", front, topic)
}

func tutorImagePrompt(question, gradeLevel string) string {
	if gradeLevel == "" {
		gradeLevel = "general"
	}
	return fmt.Sprintf("Create an educational illustration for the topic: %q. "+
		"Make it clear, simple, and appropriate for %s level students. "+
		"Focus on visual elements that help explain the concept.", question, gradeLevel)
}
