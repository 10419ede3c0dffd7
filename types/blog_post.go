package types

// BlogPost is an article in the site blog. Posts sharing a Category are
// considered related.
type BlogPost struct {
	ID           int    `json:"id" bson:"id"`
	Title        string `json:"title" bson:"title"`
	Excerpt      string `json:"excerpt" bson:"excerpt"`
	Content      string `json:"content" bson:"content"`
	Category     string `json:"category" bson:"category"`
	AuthorName   string `json:"authorName" bson:"authorName"`
	AuthorAvatar string `json:"authorAvatar,omitempty" bson:"authorAvatar,omitempty"`
	PublishDate  string `json:"publishDate" bson:"publishDate"`
	ReadTime     string `json:"readTime" bson:"readTime"`
	ImageURL     string `json:"imageUrl" bson:"imageUrl"`
	CreatedAt    string `json:"createdAt" bson:"createdAt"`
}

type CreateBlogPostRequest struct {
	Title        string `json:"title" validate:"required,min=3,max=100"`
	Excerpt      string `json:"excerpt" validate:"required,min=10,max=200"`
	Content      string `json:"content" validate:"required,min=50"`
	Category     string `json:"category" validate:"required"`
	AuthorName   string `json:"authorName" validate:"required"`
	AuthorAvatar string `json:"authorAvatar"`
	PublishDate  string `json:"publishDate" validate:"required"`
	ReadTime     string `json:"readTime" validate:"required"`
	ImageURL     string `json:"imageUrl" validate:"required,url"`
}

func (r CreateBlogPostRequest) BlogPost() BlogPost {
	return BlogPost{
		Title:        r.Title,
		Excerpt:      r.Excerpt,
		Content:      r.Content,
		Category:     r.Category,
		AuthorName:   r.AuthorName,
		AuthorAvatar: r.AuthorAvatar,
		PublishDate:  r.PublishDate,
		ReadTime:     r.ReadTime,
		ImageURL:     r.ImageURL,
	}
}
