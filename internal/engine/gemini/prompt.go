package gemini

// billPrompt asks the model to transcribe a bill image directly into the
// structured bill schema used by the rest of the pipeline.
const billPrompt = `You are a receipt and invoice data extraction assistant. Analyze the provided document image and extract its contents into the following JSON structure.

IMPORTANT INSTRUCTIONS:
- Extract EVERY line item. Do not skip, summarize, or omit any items.
- Use null for any field that is not present in the document.
- Amounts in "amounts" are whole numbers in the document's currency.
- "document_type" must be one of: "fuel_receipt", "tax_invoice", "restaurant", "receipt".

Return ONLY valid JSON with no markdown formatting, no code fences, no explanation.

The JSON object must follow this schema:
{
  "document_type": "receipt",
  "vendor": {
    "name": null,
    "gstin": null,
    "phone": null
  },
  "invoice": {
    "number": null,
    "date": null
  },
  "items": [
    {
      "name": "",
      "unit_price": 0,
      "quantity": 0,
      "total": 0
    }
  ],
  "amounts": {
    "subtotal": null,
    "tax": null,
    "grand_total": null,
    "currency": "INR"
  }
}`
