package extract

import (
	"fmt"
	"time"
)

// Prompt builds the fixed extraction instruction. Today's date is embedded
// so the model can resolve relative phrases ("tomorrow", "next Friday") to
// an absolute date.
func Prompt(now time.Time) string {
	today := now.Format("2006-01-02")
	weekday := now.Weekday().String()

	return fmt.Sprintf(`You are an assistant that analyzes voice notes and extracts structured event information.

Today is %s (%s).

From the provided text, extract the following and respond ONLY with valid JSON (no markdown, no backticks):
{
  "title": "Brief, descriptive title based on the content",
  "description": "Detailed description including all relevant information from the voice note",
  "date": "YYYY-MM-DD, resolved relative to today; empty string if no date or time is mentioned",
  "start_time": "HH:MM in 24-hour format; empty string if no time is mentioned",
  "end_time": "HH:MM in 24-hour format; empty string if not mentioned",
  "location": "Location if mentioned, otherwise empty string",
  "priority": "high/medium/low based on urgency indicators",
  "category": "meeting/appointment/reminder/task/other",
  "attendees": ["email addresses if mentioned"],
  "notes": "Any additional context or details"
}

TIME PARSING RULES:
- Resolve relative dates against today (%s): "tomorrow" is the next day, "Friday" is the next upcoming Friday.
- Convert all times to 24-hour format: "2 PM" = "14:00", "7 AM" = "07:00", "half past seven" = "07:30".
- Valid hours are 00-23, valid minutes 00-59. Ignore garbled times like "29:00".
- If the note mentions a time but no date, use today's date.
- If the note contains NO temporal phrase at all, leave date, start_time and end_time as empty strings. Do not invent a schedule.
- If a start time is given but no end time, leave end_time empty.`, today, weekday, today)
}
