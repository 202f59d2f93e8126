package service

import "fmt"

// 提示词构造，纯字符串拼装，不做任何IO和校验。
// 评测提示词中的 "Correct!" / "Incorrect" 起始标记是下游判定正误的依据，措辞不可改动

const maxPDFPayload = 100000

// BuildGenerationPrompt 根据文档内容生成指定数量的问答对，
// 要求模型返回带 question/answer 键的JSON数组
func BuildGenerationPrompt(documentText string, count int) (systemPrompt, userPrompt string) {
	systemPrompt = `You are an expert study assistant. Your task is to create high-quality study questions based on the ` +
		`document content provided. For each question, also generate a comprehensive answer that would be ` +
		`considered correct. Focus on important concepts, key details, and testing understanding rather than ` +
		`memorization. Create a diverse set of questions that cover the main topics in the document.`

	userPrompt = fmt.Sprintf(`Generate %d study questions and answers based on the following document. Return your response `+
		`as a JSON array where each item has "question" and "answer" fields.

Document content:
%s`, count, documentText)

	return systemPrompt, userPrompt
}

// BuildEvaluationPrompt 比对用户答案与参考答案。
// 参考答案只是评分指引；个人背景类问题无视参考答案直接判对；
// 回复必须以 "Correct!" 或 "Incorrect" 开头，答错时按固定格式附上资料链接
func BuildEvaluationPrompt(question, referenceAnswer, userAnswer string) (systemPrompt, userPrompt string) {
	systemPrompt = `You are assisting the user in their study. Compare their answer to the provided target answer. ` +
		`Use your best judgment to determine whether the answer would pass, considering that the target answer ` +
		`is just a guideline and not a model to be matched perfectly. ` +
		`If their answer is incorrect or insufficient, explain the difference between the answer they provided ` +
		`and what the correct answer is and how to fix it. If the answer is correct, start your response with "Correct!". ` +
		`If it is incorrect, start your response with "Incorrect". ` +
		`If the current question asks about a user's personal background (experience or inclinations), ` +
		`ignore the target answer and mark the answer as correct. ` +
		`Ensure your response is conversational and use Markdown formatting. ` +
		`If they are incorrect, direct them to relevant documentation with the following format:
You can find further information on this topic at:
[Source Name](<link>)`

	userPrompt = fmt.Sprintf("Question: %q\nTarget Answer: %q\nUser's Answer: %q", question, referenceAnswer, userAnswer)

	return systemPrompt, userPrompt
}

// BuildParsePrompt 把用户粘贴的原始问答文本整理成结构化数组，缺失的答案由模型补全
func BuildParsePrompt(input string) (systemPrompt, userPrompt string) {
	systemPrompt = `You are an assistant that helps users organize their study material. The user will provide a text with questions (and optionally answers). ` +
		`Your task is to parse the input and return a structured format of questions and answers. If an answer is missing, answer it yourself.`

	userPrompt = fmt.Sprintf(`Here are some questions (with optionally provided answers):

%s

Please parse this into an array of objects with "question" and "answer" keys. Ensure each question has an answer. `+
		`If a demo answer is provided, use that; otherwise answer it yourself. Respond with only `+
		`the array of objects, and do not include the response in a code block or use backticks.`, input)

	return systemPrompt, userPrompt
}

// BuildAnswerPrompt 为单个缺答案的问题独立生成参考答案，只有system指令
func BuildAnswerPrompt(question string) (systemPrompt string) {
	return fmt.Sprintf(`You are assisting the user in their study. Provide a concise and accurate answer to the following question: %q. `+
		`Only answer the question, do not say anything other than the answer.`, question)
}

// BuildPDFExtractionPrompt 让模型从base64编码的PDF内容中尽力抽取正文文本
func BuildPDFExtractionPrompt(pdfBase64 string) (systemPrompt, userPrompt string) {
	systemPrompt = `You are a document processing assistant. Your task is to extract the text content from ` +
		`the PDF that has been converted to base64. Extract as much text as possible while maintaining ` +
		`the structure and formatting to the extent possible.`

	if len(pdfBase64) > maxPDFPayload {
		pdfBase64 = pdfBase64[:maxPDFPayload]
	}
	userPrompt = fmt.Sprintf(`Extract the text from this PDF content (base64 encoded). Ignore any images, `+
		`charts, or non-textual elements. Just return the raw text.

%s`, pdfBase64)

	return systemPrompt, userPrompt
}
