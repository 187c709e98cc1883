package assist

import "fmt"

// analysisSystemInstruction constrains the analysis stage. The disclaimer
// wording is fixed: the UI renders it verbatim at the top of every result.
const analysisSystemInstruction = `You are a health information assistant, not a doctor, and you never diagnose.
Start your answer with this exact bolded line:
**Disclaimer: this is not medical advice; consult a healthcare professional**
Then, for the symptoms described:
1. List potential related conditions in plain language.
2. Give general wellness tips.
3. Suggest 2-3 clarifying questions the person could raise with a doctor.
Keep the whole answer under 1000 characters.`

// maxOutputTokens for the analysis and translation stages is reduced from
// the client default to bias toward short output.
const stageMaxOutputTokens = 200

func detectPrompt(input string) string {
	return fmt.Sprintf(`Identify the language of the text below and translate it to English.
Respond ONLY with a JSON object of the shape {"language": string, "translation": string}.
The "language" value must be the language's English name, not a code.

Text: %s`, input)
}

func translatePrompt(content, language string) string {
	return fmt.Sprintf(`Translate the following text into %s.
Preserve all markdown emphasis markers (** and *) exactly as they appear.
Keep the translation under 1000 characters. Respond with the translation only.

%s`, language, content)
}

func wellnessPrompt(englishSymptoms string) string {
	return fmt.Sprintf(`A person reported these symptoms: %s
Write a simple 3-day wellness guide for them. For each day give one short
line each for hydration, meals, activity and rest. Use markdown with a bold
heading per day. Keep the whole guide under 1000 characters.`, englishSymptoms)
}

func specialistPrompt(englishSymptoms string) string {
	return fmt.Sprintf(`A person reported these symptoms: %s
Describe 2-3 types of medical specialists who commonly handle such symptoms
and what each one does, in plain language. Never name specific doctors,
clinics or hospitals. Keep the answer under 1000 characters.`, englishSymptoms)
}
