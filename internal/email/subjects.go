package email

const (
	subjectLeadFmt    = "New %s Shipping Lead: %s %s"
	subjectInquiryFmt = "New Contact Inquiry: %s"
	subjectDigestFmt  = "Daily Lead Summary for %s"
)
