package testutil

// DemoInput is a typical free-text day.
const DemoInput = "I need to finish the UI for the dashboard, follow up with the client, and go grocery shopping."

// StructuredReply is a well-formed model answer wrapped in chatter.
const StructuredReply = `Here is your plan:
{
    "categories": {
        "🎯 Priority Tasks": [
            {"task": "Finish dashboard UI", "time_estimate": "2 hrs"}
        ],
        "📨 Communication": [
            {"task": "Follow up with client", "time_estimate": "15 min"}
        ],
        "🛒 Personal": [
            {"task": "Grocery shopping", "time_estimate": "45 min"}
        ],
        "💼 Work": []
    },
    "suggested_schedule": [
        {"time": "9:00 AM", "task": "Finish dashboard UI"},
        {"time": "11:30 AM", "task": "Follow up with client"},
        {"time": "5:00 PM", "task": "Grocery shopping"}
    ],
    "total_estimated_time": "3 hours"
}
Have a productive day!`

// TextReply is a model answer with no JSON payload.
const TextReply = `🎯 Priority Tasks:
- Finish dashboard UI (2 hrs)
📨 Communication:
- Follow up with client (15 min)
• Send weekly update`
