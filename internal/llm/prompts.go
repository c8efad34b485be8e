package llm

import "fmt"

// RefinementPersona primes every chat with the requirements-refinement expert.
const RefinementPersona = `You are a Prompt Refinement Expert for software project planning. Your role is to be extremely thorough and critical in helping users refine their project requirements.

Your behavior:
1. Ask clarifying questions about EVERY aspect of the project
2. Point out ambiguities, missing information, and potential issues
3. Suggest better ways to phrase requirements
4. Push for specific technical details
5. Question assumptions and vague statements
6. Continue refining until the prompt is crystal clear and comprehensive

Be professional but persistent. Do not accept vague or incomplete requirements. Your goal is to produce a prompt that any developer could use to build exactly what the user wants.`

func techStackPrompt(refined string) string {
	return fmt.Sprintf(`Based on this project prompt, suggest the most appropriate coding frameworks and languages:

%s

Format your response as a simple list, like:
Frontend: React, TypeScript, Tailwind CSS
Backend: Python, FastAPI, SQLAlchemy
Database: PostgreSQL
etc.`, refined)
}

func checklistPrompt(refined string) string {
	return fmt.Sprintf(`Create a detailed, granular development checklist for this project:

%s

Format as numbered steps, each step should be specific and actionable. Include at least 10-15 steps covering:
- Project setup
- Core functionality implementation
- Testing
- Deployment preparation`, refined)
}

func rulesPrompt(refined, techStack string) string {
	return fmt.Sprintf(`Generate content for a .cursor/rules file for this project. Use this exact template and fill in the sections based on the project requirements:

Project: %s
Tech Stack: %s

TEMPLATE TO FILL:
%s`, refined, techStack, rulesTemplate)
}

const rulesTemplate = `// --- PROJECT CONTEXT AND OBJECTIVES ---
// PROJECT NAME: [Extract from prompt]
// PROJECT TYPE: [Identify type]
// PRIMARY GOAL: [Main objective]
// KEY OUTCOME: [Expected result]
// TARGET AUDIENCE/USERS: [Who will use this]
// DEPLOYMENT ENVIRONMENT: [Where it will run]
// NON-FUNCTIONAL REQUIREMENTS: [Performance, security, etc.]

// --- ARCHITECTURAL AND DESIGN GUIDELINES ---
// ARCHITECTURAL PATTERN: [Suggested pattern]
// DESIGN PRINCIPLES: [Key principles]
// DATA FLOW: [How data moves]
// ERROR HANDLING: [Error strategy]
// SECURITY: [Security considerations]
// SCALABILITY: [Scalability approach]

// --- TECHNOLOGY STACK AND CODING STANDARDS ---
// PRIMARY LANGUAGE: [Main language]
// FRAMEWORK(S): [List frameworks]
// DATABASE(S): [Database choice]
// PACKAGE MANAGER: [Package manager]
// CODING STYLE: [Style guide]
// NAMING CONVENTIONS: [Naming rules]
// TYPE HINTING: [Type hint requirements]
// COMMENTING/DOCSTRINGS: [Documentation standards]

// --- DEVELOPMENT LIFECYCLE AND QA ---
// TEST-DRIVEN DEVELOPMENT (TDD): [TDD approach]
// UNIT TESTING: [Testing framework]
// AUTOMATION: [What to automate]
// VERSION CONTROL: [Git practices]
// CODE REVIEW: [Review process]

// --- AI INTERACTION GUIDELINES ---
// CONTEXTUAL AWARENESS: [AI context rules]
// ITERATIVE REFINEMENT: [How AI should help]
// CLARIFICATION: [When to ask questions]
// PROMPT CRITIQUE: [AI feedback approach]
// ERROR HANDLING: [AI error assistance]`
