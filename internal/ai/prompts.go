package ai

// Prompts for the token-classification operations. The response schema does
// the heavy lifting; the prompts pin down what counts as an entity and the
// offset convention.

const skillTagSystemPrompt = `You are a named-entity recognizer for resume and CV text. ` +
	`You identify skill mentions exactly as they appear in the input, without ` +
	`rephrasing, translating, or expanding them. Resume text may mix English ` +
	`and Indonesian.`

const skillTagUserPromptTemplate = `Identify every technical skill, tool, ` +
	`programming language, framework, or professional competency mentioned in ` +
	`the text below. Report each mention as an entity with label "SKILL", the ` +
	`surface text exactly as written, and the character offset where it starts ` +
	`(-1 if you cannot determine it). Report mentions in the order they appear. ` +
	`Do not invent skills that are not in the text.

Text:
%s`

const majorTagSystemPrompt = `You are a named-entity recognizer for resume and CV text. ` +
	`You identify fields of study exactly as they appear in the input. Resume ` +
	`text may mix English and Indonesian.`

const majorTagUserPromptTemplate = `Identify every academic major or field of ` +
	`study mentioned in the text below (for example "Computer Science", ` +
	`"Teknik Informatika", "majoring in Data Science"). Report each mention as ` +
	`an entity with label "MAJOR", the surface text exactly as written, and the ` +
	`character offset where it starts (-1 if you cannot determine it). Do not ` +
	`report degrees without a field, and do not invent majors that are not in ` +
	`the text.

Text:
%s`
