package generator

import "strings"

const promptTemplate = `You are a skilled and experienced software tester. Below is code written in {{language}}. Your task is to write multiple test cases for the program, each of which will fail if they encounter possible exceptions, runtime errors, boundary conditions, and edge cases. You should also test possible errors (e.g., invalid inputs, overflow, etc.), and let the test cases fail if they create any form of error. Ensure at least twenty rigorous test cases are generated, but below thirty, each of which can fail. These tests should not result in runtime errors themselves, and should follow the conventions of the testing framework in {{language}}.

Make sure the test cases do not cause runtime issues (such as syntax errors, missing imports, or invalid references). Your tests should be well-structured and executable as-is in the provided testing framework. Any functions or classes used should be correctly renamed if necessary to avoid issues.

Program:
{{code}}

Please generate test cases in {{language}}, focusing on catching errors when the input is incorrect, and failing if the function produces incorrect results or breaks under edge cases. For Python, use pytest. Import only modules you need, assume that the function is already in the file, and DO NOT USE BACKTICKS, STRING LITERALS, OR MARKDOWN WHERE IT SHOULD NOT BE.`

// BuildPrompt fills the test-writing instructions with the program and its language.
func BuildPrompt(source, language string) string {
	r := strings.NewReplacer("{{language}}", language, "{{code}}", source)
	return r.Replace(promptTemplate)
}
