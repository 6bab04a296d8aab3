package vision

// Prompt is the fixed instruction sent with every document. It asks for a
// bare JSON object so replies can be parsed without model-specific handling.
const Prompt = `You are reading a financial statement (balance sheet). Identify every asset line and every liability line shown in the document.

Return ONLY a JSON object, with no markdown, no code fences and no commentary, using exactly this shape:
{
  "assets": [{"description": "", "value": 0}],
  "liabilities": [{"description": "", "value": 0}],
  "notes": ""
}

Rules:
- "value" is a plain JSON number using a period as decimal separator and no thousands separators.
- Treat "Ativo" lines as assets and "Passivo" or "Obrigações" lines as liabilities.
- Do not include subtotal or total lines when their components are listed.
- Leave an array empty when the document shows no lines of that kind.
- Use "notes" for anything uncertain, such as illegible figures or the currency used.`
