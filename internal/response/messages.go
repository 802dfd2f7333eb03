package response

// User-facing error messages. Validation failures carry a descriptive
// message; upstream generator failures stay generic — the cause is logged,
// never exposed.
const (
	MsgTopicRequired        = "Topic is required and must be a non-empty string"
	MsgNumQuestionsRange    = "Number of questions must be between 1 and 20"
	MsgGradeLevelRequired   = "Grade level is required"
	MsgQuestionRequired     = "Question is required and must be a non-empty string"
	MsgStudentDataRequired  = "Student data is required"
	MsgPromptRequired       = "Prompt is required and must be a non-empty string"
	MsgImageDataRequired    = "Image data and instructions are required"
	MsgInvalidPayload       = "Invalid request payload"
	MsgImageNotFound        = "Image not found"
	MsgEndpointNotFound     = "Endpoint not found"
	MsgTooManyRequests      = "Too many requests. Please try again later"
	MsgNoActiveQuiz         = "No quiz has been generated yet"
	MsgNoActiveAssignment   = "No assignment has been generated yet"
	MsgInvalidDefinition    = "Generated content is malformed and cannot be graded"
	MsgFailedQuiz           = "Failed to generate quiz"
	MsgFailedNotes          = "Failed to generate notes"
	MsgFailedFlashcards     = "Failed to generate flashcards"
	MsgFailedAssignment     = "Failed to generate assignment"
	MsgFailedFeedback       = "Failed to generate feedback"
	MsgFailedTutor          = "Failed to get tutor response"
	MsgFailedImage          = "Failed to generate image"
	MsgFailedEnhanceImage   = "Failed to enhance image"
	MsgInternal             = "Something went wrong!"
)
