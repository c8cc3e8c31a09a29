package usecase

import (
	"strings"

	"rag-pipeline/internal/domain"
)

const answerSystemPrompt = "You are a helpful assistant."

// Answer prompt templates. Placeholders are {query_time}, {query} and
// {references}; the model replies with a "## Thought" section followed by a
// "## Final Answer" line.

const openAnswerPrompt = `For the given question and multiple references from web pages, think step by step, then provide the final answer.
Current date: {query_time}

Note:
- For your final answer, please use as few words as possible.
- The user's question may contain factual errors, in which case you MUST reply ` + "`invalid question`" + `
- If you don't know the answer, you MUST respond with ` + "`I don't know`" + `
- Your output format needs to meet the requirements: First, start with ` + "`## Thought\n`" + ` and then output the thought process regarding the user's question. After you finish thinking, you MUST reply with the final answer on the last line, starting with ` + "`## Final Answer\n`" + ` and using as few words as possible.

### Question
{query}

### References
{references}
`

const movieAnswerPrompt = `For the given question and multiple references from Mock API and Web Pages, think step by step, then provide the final answer.
Current date: {query_time}

Note:
- For your final answer, please use as few words as possible.
- The user's question may contain factual errors, in which case you MUST reply ` + "`invalid question`" + `. Here are some examples of invalid questions:
    - ` + "`when was \"soul\" released on hulu?`" + ` (The movie "Soul" was not released on Hulu. Instead, it was released on Disney+.)
    - ` + "`what year did the simpsons stop airing?`" + ` ("The Simpsons" is an ongoing series that has been continuously airing new episodes for over three decades.)
- If you don't know the answer, you MUST respond with ` + "`I don't know`" + `
- If the references do not contain the necessary information to answer the question, respond with ` + "`I don't know`" + `
- Using only the refernces below and not prior knowledge, if there is no reference, respond with ` + "`I don't know`" + `
- Your output format needs to meet the requirements: First, start with ` + "`## Thought\n`" + ` and then output the thought process regarding the user's question. After you finish thinking, you MUST reply with the final answer on the last line, starting with ` + "`## Final Answer\n`" + ` and using as few words as possible.

### Question
{query}

### References
{references}
`

const musicAnswerPrompt = `For the given question and multiple references from Mock API and Web Pages, think step by step, then provide the final answer.
Current date: {query_time}

Note:
- For your final answer, please use as few words as possible.
- The user's question may contain factual errors, in which case you MUST reply ` + "`invalid question`" + `. Here are some examples of invalid questions:
    - ` + "`how long was phil rudd the drummer for the band van halen?`" + ` (Phil Rudd was the drummer for AC/DC, and Alex Van Halen has been the primary drummer for Van Halen.)
    - ` + "`what was the name of justin bieber's album last year?`" + ` (Justin Bieber did not release an album last year.)
- If you don't know the answer, you MUST respond with ` + "`I don't know`" + `
- If the references do not contain the necessary information to answer the question, respond with ` + "`I don't know`" + `
- Using only the refernces below and not prior knowledge, if there is no reference, respond with ` + "`I don't know`" + `
- Your output format needs to meet the requirements: First, start with ` + "`## Thought\n`" + ` and then output the thought process regarding the user's question. After you finish thinking, you MUST reply with the final answer on the last line, starting with ` + "`## Final Answer\n`" + ` and using as few words as possible.

### Question
{query}

### References
{references}
`

const sportsAnswerPrompt = `For the given question and multiple references from Mock API, think step by step, then provide the final answer.
Current date: {query_time}

Note:
- For your final answer, please use as few words as possible.
- The user's question may contain factual errors, in which case you MUST reply ` + "`invalid question`" + `. Here are some examples of invalid questions:
    - ` + "`what's the latest score update for OKC's game today?`" + ` (There is no game for OKC today)
    - ` + "`how many times has curry won the nba dunk contest?`" + ` (Steph Curry has never participated in the NBA dunk contest)
- If you don't know the answer, you MUST respond with ` + "`I don't know`" + `
- If the references do not contain the necessary information to answer the question, respond with ` + "`I don't know`" + `
- Using only the refernces below and not prior knowledge, if there is no reference, respond with ` + "`I don't know`" + `
- Your output format needs to meet the requirements: First, start with ` + "`## Thought\n`" + ` and then output the thought process regarding the user's question. After you finish thinking, you MUST reply with the final answer on the last line, starting with ` + "`## Final Answer\n`" + ` and using as few words as possible.

### Question
{query}

### References
{references}
`

const financeAnswerPrompt = `For the given question and multiple references from Mock API, think step by step, then provide the final answer.
Current date: {query_time}

Note:
- For your final answer, please use as few words as possible.
- The user's question may contain factual errors, in which case you MUST reply ` + "`invalid question`" + `. Here are some examples of invalid questions:
    - ` + "`what is the price of bitcoin when it launch in 2015?`" + ` (Bitcoin was launched in 2009.)
    - ` + "`which country has adopted ethereum as legal tender?`" + ` (In reality, no country has done so.)
- If you don't know the answer, you MUST respond with ` + "`I don't know`" + `
- If the references do not contain the necessary information to answer the question, respond with ` + "`I don't know`" + `
- Using only the refernces below and not prior knowledge, if there is no reference, respond with ` + "`I don't know`" + `
- Your output format needs to meet the requirements: First, start with ` + "`## Thought\n`" + ` and then output the thought process regarding the user's question. After you finish thinking, you MUST reply with the final answer on the last line, starting with ` + "`## Final Answer\n`" + ` and using as few words as possible.

### Question
{query}

### References
{references}
`

// BuildAnswerPrompt fills the domain's answer template.
func BuildAnswerPrompt(d domain.QueryDomain, queryTime, query, references string) string {
	var template string
	switch d {
	case domain.DomainFinance:
		template = financeAnswerPrompt
	case domain.DomainSports:
		template = sportsAnswerPrompt
	case domain.DomainMovie:
		template = movieAnswerPrompt
	case domain.DomainMusic:
		template = musicAnswerPrompt
	default:
		template = openAnswerPrompt
	}
	replacer := strings.NewReplacer(
		"{query_time}", queryTime,
		"{query}", query,
		"{references}", references,
	)
	return replacer.Replace(template)
}

// ExtractFinalAnswer pulls the text after the "## Final Answer" marker. A
// response without the marker is an abstention.
func ExtractFinalAnswer(text string) string {
	const marker = "## Final Answer"
	idx := strings.Index(text, marker)
	if idx == -1 {
		return "i don't know"
	}
	return strings.TrimSpace(text[idx+len(marker):])
}
