package store

import (
	"context"
	"fmt"

	"github.com/easytech/webapi/types"
)

const seedPostContent = "Lorem ipsum dolor sit amet, consectetur adipiscing elit. Nullam consectetur, nisl eget eleifend tincidunt, velit urna aliquet elit, nec tempor nisl felis eget mauris. Phasellus at pharetra dolor. Sed dapibus, nisl eget eleifend tincidunt, velit urna aliquet elit, nec tempor nisl felis eget mauris..."

var seedServices = []types.Service{
	{
		Title:       "IT Support",
		Description: "Professional IT support for businesses of all sizes. Our team of experts is available 24/7 to help you resolve technical issues quickly and efficiently.",
		PriceFrom:   99,
		PriceUnit:   "month",
		ImageURL:    "/images/it-support.jpg",
		Features:    []string{"24/7 Help Desk", "Remote Support", "On-site Visits", "Preventive Maintenance"},
	},
	{
		Title:       "Cloud Solutions",
		Description: "Secure and scalable cloud infrastructure solutions to help your business leverage the power of cloud computing for improved efficiency and reduced costs.",
		PriceFrom:   199,
		PriceUnit:   "month",
		ImageURL:    "/images/cloud-solutions.jpg",
		Features:    []string{"Cloud Migration", "AWS/Azure/GCP", "Private Cloud", "Hybrid Solutions"},
	},
	{
		Title:       "Cybersecurity",
		Description: "Comprehensive cybersecurity services to protect your business from evolving threats. We implement robust security measures to safeguard your valuable data.",
		PriceFrom:   299,
		PriceUnit:   "month",
		ImageURL:    "/images/cybersecurity.jpg",
		Features:    []string{"Vulnerability Assessment", "Penetration Testing", "Security Audits", "Incident Response"},
	},
}

var seedBlogPosts = []types.BlogPost{
	{
		Title:        "5 Ways to Improve Your Company's IT Infrastructure",
		Excerpt:      "Learn how to optimize your IT infrastructure for better performance, security, and cost-efficiency.",
		Content:      seedPostContent,
		Category:     "Infrastructure",
		AuthorName:   "Michael Chen",
		AuthorAvatar: "/images/authors/michael.jpg",
		PublishDate:  "2023-05-15",
		ReadTime:     "5 min",
		ImageURL:     "/images/blog/it-infrastructure.jpg",
	},
	{
		Title:        "The Importance of Regular Security Audits",
		Excerpt:      "Regular security audits are essential for identifying vulnerabilities in your systems before they can be exploited.",
		Content:      seedPostContent,
		Category:     "Security",
		AuthorName:   "Sarah Johnson",
		AuthorAvatar: "/images/authors/sarah.jpg",
		PublishDate:  "2023-06-22",
		ReadTime:     "7 min",
		ImageURL:     "/images/blog/security-audit.jpg",
	},
	{
		Title:        "Cloud Migration: A Step-by-Step Guide",
		Excerpt:      "Moving your business to the cloud? Follow our comprehensive guide to ensure a smooth transition.",
		Content:      seedPostContent,
		Category:     "Cloud",
		AuthorName:   "David Rodriguez",
		AuthorAvatar: "/images/authors/david.jpg",
		PublishDate:  "2023-07-10",
		ReadTime:     "10 min",
		ImageURL:     "/images/blog/cloud-migration.jpg",
	},
}

var seedTestimonials = []types.Testimonial{
	{
		Name:     "Jennifer Lee",
		Position: "CTO, Nexus Innovations",
		Content:  "EasyTech has transformed how our business handles IT. Their support team is responsive, knowledgeable, and always goes the extra mile to solve our technical challenges.",
		Rating:   5,
		Initials: "JL",
	},
	{
		Name:     "Robert Chen",
		Position: "IT Director, Global Logistics",
		Content:  "Since partnering with EasyTech for our cloud migration, we've seen significant improvements in our system performance and a 30% reduction in IT costs.",
		Rating:   5,
		Initials: "RC",
	},
	{
		Name:     "Maria Santos",
		Position: "CEO, Brightwave Solutions",
		Content:  "The cybersecurity team at EasyTech identified vulnerabilities we weren't even aware of. Their proactive approach has given us peace of mind knowing our data is secure.",
		Rating:   5,
		Initials: "MS",
	},
}

// Seed inserts the admin account and the sample site content when the users
// collection is empty. It reports whether anything was written.
func (s *Store) Seed(ctx context.Context, admin types.User) (bool, error) {
	count, err := s.backend.Collection(UsersCollection).Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	if _, err := s.Users.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	for _, svc := range seedServices {
		if _, err := s.Services.Create(ctx, svc); err != nil {
			return false, fmt.Errorf("seed services: %w", err)
		}
	}
	for _, post := range seedBlogPosts {
		if _, err := s.BlogPosts.Create(ctx, post); err != nil {
			return false, fmt.Errorf("seed blog posts: %w", err)
		}
	}
	for _, testimonial := range seedTestimonials {
		if _, err := s.Testimonials.Create(ctx, testimonial); err != nil {
			return false, fmt.Errorf("seed testimonials: %w", err)
		}
	}
	return true, nil
}
